package panel

import (
	"errors"

	appErrors "github.com/undiziwa/userpanel/pkg/errors"
)

// ReportFailure maps a failed operation onto an error notification. A
// remote rejection that carried a human-readable message is shown as-is;
// everything else (bodyless rejections, transport failures, unparseable
// error bodies) falls back to the caller's generic message.
func (n *Notifier) ReportFailure(err error, fallback string) {
	message := fallback
	var e *appErrors.Error
	if errors.As(err, &e) && e.Kind == appErrors.KindRejected && e.Message != "" {
		message = e.Message
	}
	n.Error(message)
}
