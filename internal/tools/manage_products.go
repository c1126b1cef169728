package tools

import "retailcore/pkg/domain"

type manageProducts struct{}

// NewManageProducts creates or updates catalog products. Updates patch only
// the fields that were actually supplied: empty strings and non-positive
// prices are treated as "not provided".
func NewManageProducts() Tool {
	return manageProducts{}
}

func (manageProducts) Descriptor() Descriptor {
	return Descriptor{
		Name:        "manage_products",
		Description: "Manages product catalog.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Enum: []string{"create", "update"}},
			{Name: "name", Type: "string", Optional: true},
			{Name: "supplier_id", Type: "string", Optional: true},
			{Name: "unit_price", Type: "number", Optional: true},
			{Name: "description", Type: "string", Optional: true},
			{Name: "product_id", Type: "string", Optional: true},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "product_id", Type: "string"},
			{Name: "delta", Type: "object"},
		},
	}
}

func (manageProducts) Invoke(view domain.View, args map[string]any) Outcome {
	switch argString(args, "action") {
	case "create":
		rec := domain.Record{
			"name":        argString(args, "name"),
			"supplier_id": argString(args, "supplier_id"),
			"unit_price":  argNumber(args, "unit_price"),
			"description": argString(args, "description"),
		}
		id, delta := buildCreate(view, domain.EntityProduct, rec)
		return success(map[string]any{"product_id": id}, delta)

	case "update":
		id := argString(args, "product_id")
		patch := domain.Record{}
		if name := argString(args, "name"); name != "" {
			patch["name"] = name
		}
		if price := argNumber(args, "unit_price"); price > 0 {
			patch["unit_price"] = price
		}
		if description := argString(args, "description"); description != "" {
			patch["description"] = description
		}
		delta, ok := buildPatch(view, domain.EntityProduct, id, patch)
		if !ok {
			return failure("Invalid product_id")
		}
		return success(map[string]any{"product_id": id}, delta)
	}

	return invalidAction()
}
