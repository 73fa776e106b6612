package domain

// CartItem is the snapshot of a dish taken when it was added to the cart.
type CartItem struct {
	ID          uint
	Name        string
	Price       float64
	ImageURL    string
	Description string
	Category    *Category
}

// Cart is the client-only set of selected dishes, keyed by dish ID and kept
// in insertion order. Every dish counts once; there is no quantity. The cart
// is never persisted. It is not safe for concurrent use.
type Cart struct {
	items []CartItem
	index map[uint]int
}

func NewCart() *Cart {
	return &Cart{index: map[uint]int{}}
}

// Add inserts the dish unless its ID is already present.
func (c *Cart) Add(dish Dish) {
	if c.index == nil {
		c.index = map[uint]int{}
	}
	if _, ok := c.index[dish.ID]; ok {
		return
	}

	c.index[dish.ID] = len(c.items)
	c.items = append(c.items, CartItem{
		ID:          dish.ID,
		Name:        dish.Name,
		Price:       dish.Price,
		ImageURL:    dish.ImageURL,
		Description: dish.Description,
		Category:    dish.Category,
	})
}

func (c *Cart) Remove(id uint) {
	pos, ok := c.index[id]
	if !ok {
		return
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].ID] = i
	}
}

func (c *Cart) Clear() {
	c.items = nil
	c.index = map[uint]int{}
}

func (c *Cart) Has(id uint) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Cart) Count() int {
	return len(c.items)
}

func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// DishIDs returns the cart's dish IDs in insertion order, ready for a meal
// record submission.
func (c *Cart) DishIDs() []uint {
	ids := make([]uint, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}
