package catalog

// FieldType classifies the value a detected field holds.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeCurrency    FieldType = "currency"
	FieldTypeZipCode     FieldType = "zip-code"
	FieldTypeCountryCode FieldType = "country-code"
)

// BoundingBox locates a field on the scanned page.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FieldDefinition is one field the detector found on a sample document.
type FieldDefinition struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         FieldType   `json:"type"`
	BoundingBox  BoundingBox `json:"boundingBox"`
	Required     bool        `json:"required"`
	Confidence   int         `json:"confidence"`
	AutoDetected bool        `json:"autoDetected"`
}

// DetectionStatus is the one-shot state of a simulated detection pass.
type DetectionStatus string

const (
	DetectionIdle       DetectionStatus = "idle"
	DetectionProcessing DetectionStatus = "processing"
	DetectionComplete   DetectionStatus = "complete"
	DetectionError      DetectionStatus = "error"
)

// DetectFields simulates field detection against a traffic-ticket sample.
// There is no pending operation behind it: callers get the fixed result set
// immediately and flip their own status flag to complete.
func DetectFields() []FieldDefinition {
	return []FieldDefinition{
		{ID: "f1", Name: "Ticket Number", Type: FieldTypeText, BoundingBox: BoundingBox{X: 50, Y: 100, Width: 200, Height: 30}, Required: true, Confidence: 95, AutoDetected: true},
		{ID: "f2", Name: "Driver Name", Type: FieldTypeText, BoundingBox: BoundingBox{X: 50, Y: 140, Width: 250, Height: 30}, Required: true, Confidence: 92, AutoDetected: true},
		{ID: "f3", Name: "License Plate", Type: FieldTypeText, BoundingBox: BoundingBox{X: 50, Y: 180, Width: 150, Height: 30}, Required: true, Confidence: 89, AutoDetected: true},
		{ID: "f4", Name: "Violation Date", Type: FieldTypeDate, BoundingBox: BoundingBox{X: 50, Y: 220, Width: 180, Height: 30}, Required: true, Confidence: 94, AutoDetected: true},
		{ID: "f5", Name: "Violation Code", Type: FieldTypeText, BoundingBox: BoundingBox{X: 50, Y: 260, Width: 120, Height: 30}, Required: true, Confidence: 88, AutoDetected: true},
		{ID: "f6", Name: "Fine Amount", Type: FieldTypeCurrency, BoundingBox: BoundingBox{X: 50, Y: 300, Width: 140, Height: 30}, Required: true, Confidence: 91, AutoDetected: true},
		{ID: "f7", Name: "Issuing Officer", Type: FieldTypeText, BoundingBox: BoundingBox{X: 50, Y: 340, Width: 220, Height: 30}, Required: false, Confidence: 84, AutoDetected: true},
		{ID: "f8", Name: "Location", Type: FieldTypeText, BoundingBox: BoundingBox{X: 50, Y: 380, Width: 260, Height: 30}, Required: false, Confidence: 86, AutoDetected: true},
		{ID: "f9", Name: "ZIP Code", Type: FieldTypeZipCode, BoundingBox: BoundingBox{X: 320, Y: 380, Width: 90, Height: 30}, Required: false, Confidence: 90, AutoDetected: true},
	}
}
