package entity

// DisplayData is the curated snapshot persisted with every index entry: the
// fields needed to render a hit's title, subtitle, and link, plus the
// cross-entity ID fields kept for backward-compatible linking. Unlike the
// open-ended source document, every field is explicit so the subtitle and
// link builders are checked at compile time.
type DisplayData struct {
	PONumber       string `json:"poNumber,omitempty"`
	VendorName     string `json:"vendorName,omitempty"`
	Status         string `json:"status,omitempty"`
	Name           string `json:"name,omitempty"`
	ContactName    string `json:"contactName,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ShipmentNumber string `json:"shipmentNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	AppointmentRef string `json:"appointmentRef,omitempty"`
	WarehouseName  string `json:"warehouseName,omitempty"`
	ScheduledDate  string `json:"scheduledDate,omitempty"`
	ReturnNumber   string `json:"returnNumber,omitempty"`
	Reason         string `json:"reason,omitempty"`

	// Cross-entity references.
	PurchaseOrderID string `json:"purchaseOrderId,omitempty"`
	VendorID        string `json:"vendorId,omitempty"`
	WarehouseID     string `json:"warehouseId,omitempty"`
	ShipmentID      string `json:"shipmentId,omitempty"`
}

// DisplayFromFields snapshots the display-relevant fields of a source
// document. Absent fields stay zero.
func DisplayFromFields(f Fields) DisplayData {
	return DisplayData{
		PONumber:        f["poNumber"],
		VendorName:      f["vendorName"],
		Status:          f["status"],
		Name:            f["name"],
		ContactName:     f["contactName"],
		Email:           f["email"],
		Phone:           f["phone"],
		ShipmentNumber:  f["shipmentNumber"],
		Carrier:         f["carrier"],
		TrackingNumber:  f["trackingNumber"],
		AppointmentRef:  f["appointmentRef"],
		WarehouseName:   f["warehouseName"],
		ScheduledDate:   f["scheduledDate"],
		ReturnNumber:    f["returnNumber"],
		Reason:          f["reason"],
		PurchaseOrderID: f["purchaseOrderId"],
		VendorID:        f["vendorId"],
		WarehouseID:     f["warehouseId"],
		ShipmentID:      f["shipmentId"],
	}
}

// Field returns a display field by its source-document name. Names outside
// the snapshot resolve to the empty string.
func (d DisplayData) Field(name string) string {
	switch name {
	case "poNumber":
		return d.PONumber
	case "vendorName":
		return d.VendorName
	case "status":
		return d.Status
	case "name":
		return d.Name
	case "contactName":
		return d.ContactName
	case "email":
		return d.Email
	case "phone":
		return d.Phone
	case "shipmentNumber":
		return d.ShipmentNumber
	case "carrier":
		return d.Carrier
	case "trackingNumber":
		return d.TrackingNumber
	case "appointmentRef":
		return d.AppointmentRef
	case "warehouseName":
		return d.WarehouseName
	case "scheduledDate":
		return d.ScheduledDate
	case "returnNumber":
		return d.ReturnNumber
	case "reason":
		return d.Reason
	default:
		return ""
	}
}
