package common

const (
	// message statuses:
	PendingStatus    = "pending"
	ProcessingStatus = "processing"
	DoneStatus       = "done"

	// queues:
	OrdersQueue       = "orders"
	ReservationsQueue = "reservations"

	// OS:
	WindowsOS = "windows"
	LinuxOS   = "linux"
	MacOS     = "darwin"

	DateLayout = "2006-01-02"
)
