package tools

import "retailcore/pkg/domain"

type manageSuppliers struct{}

// NewManageSuppliers creates or updates supplier records. The address
// argument is a nested object exploded into flat address fields on the
// stored record.
func NewManageSuppliers() Tool {
	return manageSuppliers{}
}

func (manageSuppliers) Descriptor() Descriptor {
	return Descriptor{
		Name:        "manage_suppliers",
		Description: "Creates or updates suppliers.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Enum: []string{"create", "update"}},
			{Name: "supplier_name", Type: "string", Optional: true},
			{Name: "contact_email", Type: "string", Optional: true},
			{Name: "address", Type: "object", Optional: true,
				Description: "Dictionary containing address fields: address, city, state, zip_code, country"},
			{Name: "supplier_id", Type: "string", Optional: true},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "supplier_id", Type: "string"},
			{Name: "delta", Type: "object"},
		},
	}
}

var supplierAddressFields = []string{"address", "city", "state", "zip_code", "country"}

func (manageSuppliers) Invoke(view domain.View, args map[string]any) Outcome {
	address := argObject(args, "address")

	switch argString(args, "action") {
	case "create":
		rec := domain.Record{
			"name":          argString(args, "supplier_name"),
			"contact_email": argString(args, "contact_email"),
			"country":       "USA",
		}
		for _, field := range supplierAddressFields {
			if field == "country" {
				continue
			}
			rec[field] = ""
		}
		for _, field := range supplierAddressFields {
			if v, ok := address[field].(string); ok {
				rec[field] = v
			}
		}
		id, delta := buildCreate(view, domain.EntitySupplier, rec)
		return success(map[string]any{"supplier_id": id}, delta)

	case "update":
		id := argString(args, "supplier_id")
		patch := domain.Record{}
		if name := argString(args, "supplier_name"); name != "" {
			patch["name"] = name
		}
		if email := argString(args, "contact_email"); email != "" {
			patch["contact_email"] = email
		}
		for _, field := range supplierAddressFields {
			if v, ok := address[field]; ok {
				patch[field] = v
			}
		}
		delta, ok := buildPatch(view, domain.EntitySupplier, id, patch)
		if !ok {
			return failure("Invalid supplier_id")
		}
		return success(map[string]any{"supplier_id": id}, delta)
	}

	return invalidAction()
}
