package request

type CreateOrder struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=1,max=256"`
}

type UpdateOrderStatus struct {
	Status string `json:"status" validate:"required"`
}
