package entity

import "time"

// Transaction actions.
const (
	ActionReceive  = "RECEIVE"
	ActionIssue    = "ISSUE"
	ActionTransfer = "TRANSFER"
)

// Transaction is a write-once log record of a completed receive, issue or transfer.
type Transaction struct {
	ID        string
	ReceiptID string // shared by all ISSUE lines of one release
	Timestamp time.Time
	User      string
	Action    string
	Qty       int

	ItemID   string
	ItemSKU  string
	ItemName string
	ItemUOM  string

	SourceZone string // TRANSFER only
	DestZone   string // zone received into, issued from, or transferred to

	// ISSUE metadata
	Department   string
	ReceiverName string
	Signature    string // PNG data URL

	// RECEIVE metadata
	BatchID string
	Expiry  Date
}
