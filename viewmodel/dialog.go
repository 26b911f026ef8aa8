// ABOUTME: User-facing confirmation dialogs returned by form submissions
package viewmodel

import "github.com/harperreed/riwora/api"

const (
	TitleError   = "Error"
	TitleSuccess = "Success"
)

type Dialog struct {
	Title   string
	Message string
}

func (d Dialog) IsError() bool {
	return d.Title == TitleError
}

func errorDialog(msg string) Dialog {
	return Dialog{Title: TitleError, Message: msg}
}

func successDialog(msg string) Dialog {
	return Dialog{Title: TitleSuccess, Message: msg}
}

// FormError is returned by a submission that was rejected, locally or by the
// server. Dialog holds what the user should see.
type FormError struct {
	Dialog Dialog
	Cause  error
}

func (e *FormError) Error() string {
	return e.Dialog.Message
}

func (e *FormError) Unwrap() error {
	return e.Cause
}

func reject(msg string, cause error) (Dialog, error) {
	d := errorDialog(msg)
	return d, &FormError{Dialog: d, Cause: cause}
}

// serverMessage prefers the gateway's message and otherwise uses fallback.
func serverMessage(err error, fallback string) string {
	msg := api.UserMessage(err)
	if msg == "" || msg == api.GenericMessage {
		return fallback
	}
	return msg
}
