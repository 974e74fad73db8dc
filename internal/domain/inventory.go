package domain

// InventorySlot is one stack in a user's inventory, unique by (ItemID, Slot)
type InventorySlot struct {
	Slot   int    `json:"slot"`
	ItemID string `json:"item_id"`
	Count  int    `json:"count"`
}

// Inventory represents the list stored in user_results.inventory
type Inventory struct {
	Slots []InventorySlot `json:"slots"`
}

// FindSlot returns the index of the stack matching both itemID and slot, or -1
func (inv *Inventory) FindSlot(itemID string, slot int) int {
	for i := range inv.Slots {
		if inv.Slots[i].ItemID == itemID && inv.Slots[i].Slot == slot {
			return i
		}
	}
	return -1
}

// CountOf sums the count of itemID across every slot
func (inv *Inventory) CountOf(itemID string) int {
	total := 0
	for _, s := range inv.Slots {
		if s.ItemID == itemID {
			total += s.Count
		}
	}
	return total
}
