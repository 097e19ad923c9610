package model

// SymbologyQR is the only barcode symbology accepted as a ticket.
const SymbologyQR = "qr"

// Observation is one decoded barcode reported by the scanning camera.
type Observation struct {
	Type string `json:"type"`
	Data string `json:"data"`
}
