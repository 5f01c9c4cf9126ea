package model

import "time"

// IncidentType classifies a delivery incident.
type IncidentType string

const (
	IncidentWrongAddress    IncidentType = "WRONG_ADDRESS"
	IncidentRecipientAbsent IncidentType = "RECIPIENT_ABSENT"
	IncidentDamagedPackage  IncidentType = "DAMAGED_PACKAGE"
	IncidentDelay           IncidentType = "DELAY"
	IncidentLostPackage     IncidentType = "LOST_PACKAGE"
	IncidentDeliveryRefused IncidentType = "DELIVERY_REFUSED"
	IncidentOther           IncidentType = "OTHER"
)

// MaxIncidentDescription bounds the free-text description length.
const MaxIncidentDescription = 500

// KnownIncidentType reports whether t is one of the enumerated incident types.
func KnownIncidentType(t IncidentType) bool {
	switch t {
	case IncidentWrongAddress, IncidentRecipientAbsent, IncidentDamagedPackage,
		IncidentDelay, IncidentLostPackage, IncidentDeliveryRefused, IncidentOther:
		return true
	}
	return false
}

// Incident is an immutable delivery problem report owned by one shipment.
type Incident struct {
	ID          string
	ShipmentID  string
	Type        IncidentType
	Description string
	ReporterID  string
	At          time.Time
}
