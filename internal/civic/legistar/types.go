package legistar

// Event is a Legistar /Events record. Field names follow the
// Legistar OData schema.
type Event struct {
	EventID       int    `json:"EventId"`
	EventBodyName string `json:"EventBodyName"`
	EventDate     string `json:"EventDate"`
	EventTime     string `json:"EventTime"`
	EventLocation string `json:"EventLocation"`
	EventComment  string `json:"EventComment"`
}

// Matter is a Legistar /Matters record: a piece of introduced
// legislation.
type Matter struct {
	MatterID        int    `json:"MatterId"`
	MatterTitle     string `json:"MatterTitle"`
	MatterName      string `json:"MatterName"`
	MatterTypeName  string `json:"MatterTypeName"`
	MatterIntroDate string `json:"MatterIntroDate"`
	MatterStatus    string `json:"MatterStatusName"`
}
