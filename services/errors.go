package services

// StorageError marks a failure inside the registration transaction. All
// writes for the request were rolled back; no email was attempted.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// RenderError marks an invoice generation failure. Under the
// commit-before-email policy the member is already persisted when this
// happens; the registration stands and the failure needs manual follow-up.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "invoice: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// NotificationError marks a mail transport or provider failure after the
// registration was committed. Same policy as RenderError: the member stays.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return "notification: " + e.Err.Error() }
func (e *NotificationError) Unwrap() error { return e.Err }
