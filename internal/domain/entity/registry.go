package entity

// joinNonEmpty joins parts with sep, skipping empties, so subtitles never
// render dangling separators for sparse documents.
func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

// registry is the process-wide constant set of searchable entity types,
// in the order they are searched when a query names no filter.
var registry = []Descriptor{
	{
		Type:         "purchaseOrder",
		Label:        "Purchase Order",
		Collection:   "purchase_orders",
		SearchFields: []string{"poNumber", "vendorName", "status"},
		TitleField:   "poNumber",
		Subtitle: func(d DisplayData) string {
			return joinNonEmpty(" · ", d.VendorName, d.Status)
		},
		Link: func(id string, _ DisplayData) string {
			return "/purchase-orders/" + id
		},
	},
	{
		Type:         "vendor",
		Label:        "Vendor",
		Collection:   "vendors",
		SearchFields: []string{"name", "contactName", "email"},
		TitleField:   "name",
		Subtitle: func(d DisplayData) string {
			return joinNonEmpty(" · ", d.ContactName, d.Email)
		},
		Link: func(id string, _ DisplayData) string {
			return "/vendors/" + id
		},
	},
	{
		Type:         "appointment",
		Label:        "Appointment",
		Collection:   "appointments",
		SearchFields: []string{"appointmentRef", "warehouseName", "vendorName"},
		TitleField:   "appointmentRef",
		Subtitle: func(d DisplayData) string {
			return joinNonEmpty(" · ", d.WarehouseName, d.ScheduledDate)
		},
		Link: func(id string, _ DisplayData) string {
			return "/appointments/" + id
		},
	},
	{
		Type:         "shipment",
		Label:        "Shipment",
		Collection:   "shipments",
		SearchFields: []string{"shipmentNumber", "carrier", "trackingNumber"},
		TitleField:   "shipmentNumber",
		Subtitle: func(d DisplayData) string {
			return joinNonEmpty(" · ", d.Carrier, d.TrackingNumber)
		},
		Link: func(id string, _ DisplayData) string {
			return "/shipments/" + id
		},
	},
	{
		Type:         "transporter",
		Label:        "Transporter",
		Collection:   "transporters",
		SearchFields: []string{"name", "contactName", "phone"},
		TitleField:   "name",
		Subtitle: func(d DisplayData) string {
			return joinNonEmpty(" · ", d.ContactName, d.Phone)
		},
		Link: func(id string, _ DisplayData) string {
			return "/transporters/" + id
		},
	},
	{
		Type:         "returnOrder",
		Label:        "Return Order",
		Collection:   "return_orders",
		SearchFields: []string{"returnNumber", "poNumber", "reason"},
		TitleField:   "returnNumber",
		Subtitle: func(d DisplayData) string {
			return joinNonEmpty(" · ", d.PONumber, d.Reason)
		},
		Link: func(id string, _ DisplayData) string {
			return "/returns/" + id
		},
	},
}

// Lookup returns the descriptor for an entity type.
func Lookup(entityType string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Type == entityType {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Types returns all registered entity type names in search order.
func Types() []string {
	out := make([]string, len(registry))
	for i, d := range registry {
		out[i] = d.Type
	}
	return out
}

// All returns every descriptor in search order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}
