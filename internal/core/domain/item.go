package domain

// Item is a purchasable product row in the item store. Stock is decremented
// by fulfillment runs and is never floored, so it can drop below zero when
// two runs race on the same item.
type Item struct {
	ID        string
	Name      string
	Stock     int
	ImageName string
	CreatedBy string
}
