package schema

// PetStatuses lists the pet lifecycle values the service accepts.
var PetStatuses = []string{"available", "pending", "sold"}

// OrderStatuses lists the order lifecycle values the service accepts.
var OrderStatuses = []string{"placed", "approved", "delivered"}

var categorySchema = &Schema{
	Name: "Category",
	Properties: map[string]Property{
		"id":   Prop(TypeInteger),
		"name": Prop(TypeString),
	},
}

var tagSchema = &Schema{
	Name: "Tag",
	Properties: map[string]Property{
		"id":   Prop(TypeInteger),
		"name": Prop(TypeString),
	},
}

// PetSchema matches a single pet body.
var PetSchema = &Schema{
	Name: "Pet",
	Properties: map[string]Property{
		"id":        Prop(TypeInteger),
		"name":      Prop(TypeString),
		"category":  ObjectOf(categorySchema),
		"photoUrls": ArrayOf(Prop(TypeString)),
		"tags":      ArrayOf(ObjectOf(tagSchema)),
		"status":    Enum(PetStatuses...),
	},
	Required: []string{"id", "name", "status"},
}

// OrderSchema matches a store order body.
var OrderSchema = &Schema{
	Name: "Order",
	Properties: map[string]Property{
		"id":       Prop(TypeInteger),
		"petId":    Prop(TypeInteger),
		"quantity": Prop(TypeInteger),
		"shipDate": Prop(TypeString),
		"status":   Enum(OrderStatuses...),
		"complete": Prop(TypeBoolean),
	},
	Required: []string{"id", "petId", "quantity", "status", "complete"},
}

// InventorySchema matches the status to count map returned by the inventory endpoint.
var InventorySchema = &Schema{
	Name: "Inventory",
	Properties: map[string]Property{
		"placed":    Prop(TypeInteger),
		"approved":  Prop(TypeInteger),
		"delivered": Prop(TypeInteger),
	},
	Required:             []string{"approved", "delivered"},
	AdditionalProperties: true,
}

// ErrorObjectSchema accepts any JSON object. Error bodies differ between
// deployments, so only the object shape is fixed.
var ErrorObjectSchema = &Schema{
	Name: "Error",
	Properties: map[string]Property{
		"code":    Prop(TypeInteger),
		"message": Prop(TypeString),
		"type":    Prop(TypeString),
		"title":   Prop(TypeString),
		"status":  Prop(TypeInteger),
		"detail":  Prop(TypeString),
	},
	AdditionalProperties: true,
}
