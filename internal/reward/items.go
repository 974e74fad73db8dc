package reward

import "github.com/osse101/AICore_Go/internal/domain"

// MergeItems credits reward items into inv. A stack matching both item ID and
// slot has its count increased; otherwise a new stack is appended.
// Returns the total number of units credited.
func MergeItems(inv *domain.Inventory, items []domain.RewardItem) int {
	credited := 0
	for _, item := range items {
		count := item.Count
		if count <= 0 {
			count = DefaultItemCount
		}

		if idx := inv.FindSlot(item.ItemID, item.Slot); idx >= 0 {
			inv.Slots[idx].Count += count
		} else {
			inv.Slots = append(inv.Slots, domain.InventorySlot{
				Slot:   item.Slot,
				ItemID: item.ItemID,
				Count:  count,
			})
		}
		credited += count
	}
	return credited
}
