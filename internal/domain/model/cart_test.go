package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(id, name string, price int64) MenuItem {
	return MenuItem{
		ItemID: id,
		Name:   name,
		Price:  decimal.NewFromInt(price),
	}
}

func TestCartAddItemMergesSameLine(t *testing.T) {
	cart := NewCart("user-1")
	item := newTestItem("item-1", "Butter Chicken", 180)

	key1 := cart.AddItem(item, nil)
	key2 := cart.AddItem(item, nil)

	require.Equal(t, key1, key2)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount)
	assert.True(t, decimal.NewFromInt(360).Equal(cart.Total))
}

func TestCartCustomizationPartitionsLines(t *testing.T) {
	cart := NewCart("user-1")
	item := newTestItem("item-1", "Butter Chicken", 180)

	keyMild := cart.AddItem(item, map[string]string{"spiceLevel": "mild"})
	keyHot := cart.AddItem(item, map[string]string{"spiceLevel": "hot"})
	keyPlain := cart.AddItem(item, nil)

	require.NotEqual(t, keyMild, keyHot)
	require.NotEqual(t, keyMild, keyPlain)
	require.Len(t, cart.Lines, 3)
	assert.Equal(t, 3, cart.ItemCount)
	assert.True(t, decimal.NewFromInt(540).Equal(cart.Total))
}

func TestCartCustomizationKeyOrderIndependent(t *testing.T) {
	cart := NewCart("user-1")
	item := newTestItem("item-1", "Butter Chicken", 180)

	key1 := cart.AddItem(item, map[string]string{"spiceLevel": "hot", "portion": "full"})
	key2 := cart.AddItem(item, map[string]string{"portion": "full", "spiceLevel": "hot"})

	// 同內容不同寫入順序必須合併為同一line
	require.Equal(t, key1, key2)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCartAddItemCopiesCustomization(t *testing.T) {
	cart := NewCart("user-1")
	item := newTestItem("item-1", "Butter Chicken", 180)

	customization := map[string]string{"spiceLevel": "mild"}
	key := cart.AddItem(item, customization)

	// 呼叫端事後改動自己的map，不可影響line的內容與識別鍵
	customization["spiceLevel"] = "hot"

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "mild", cart.Lines[0].Customization["spiceLevel"])
	assert.Equal(t, key, cart.Lines[0].Key())

	keyAgain := cart.AddItem(item, map[string]string{"spiceLevel": "mild"})
	assert.Equal(t, key, keyAgain)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCartRemoveLine(t *testing.T) {
	cart := NewCart("user-1")
	item := newTestItem("item-1", "Butter Chicken", 180)
	chai := newTestItem("item-2", "Masala Chai", 25)

	key := cart.AddItem(item, nil)
	cart.AddItem(item, nil)
	cart.AddItem(chai, nil)

	cart.RemoveLine(key)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "item-2", cart.Lines[0].ItemID)
	assert.Equal(t, 1, cart.ItemCount)
	assert.True(t, decimal.NewFromInt(25).Equal(cart.Total))

	// 再移除一次為no-op
	cart.RemoveLine(key)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.ItemCount)
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart("user-1")
	chai := newTestItem("item-2", "Masala Chai", 25)
	key := cart.AddItem(chai, nil)

	cart.UpdateQuantity(key, 3)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount)
	assert.True(t, decimal.NewFromInt(75).Equal(cart.Total))

	// 數量<=0等同移除
	cart.UpdateQuantity(key, 0)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, cart.ItemCount)
	assert.True(t, decimal.Zero.Equal(cart.Total))

	// 不存在的line為no-op
	cart.UpdateQuantity("missing", 5)
	assert.Empty(t, cart.Lines)
}

func TestCartClear(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(newTestItem("item-1", "Butter Chicken", 180), nil)
	cart.AddItem(newTestItem("item-2", "Masala Chai", 25), nil)

	cart.Clear()

	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, cart.ItemCount)
	assert.True(t, decimal.Zero.Equal(cart.Total))
}

func TestCartLoadRecomputesDerived(t *testing.T) {
	cart := NewCart("user-1")
	cart.Load([]CartLine{
		{ItemID: "item-1", Price: decimal.NewFromInt(180), Quantity: 2},
		{ItemID: "item-2", Price: decimal.NewFromInt(25), Quantity: 3},
		{ItemID: "item-3", Price: decimal.NewFromInt(99), Quantity: 0}, // 無效數量被丟棄
	})

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 5, cart.ItemCount)
	assert.True(t, decimal.NewFromInt(435).Equal(cart.Total))
}

func TestCartSnapshotIsDeepCopy(t *testing.T) {
	cart := NewCart("user-1")
	key := cart.AddItem(newTestItem("item-1", "Butter Chicken", 180), map[string]string{"spiceLevel": "mild"})

	snapshot := cart.Snapshot()
	require.Len(t, snapshot, 1)

	// 異動購物車不影響快照
	cart.UpdateQuantity(key, 5)
	cart.Lines[0].Customization["spiceLevel"] = "hot"

	assert.Equal(t, 1, snapshot[0].Quantity)
	assert.Equal(t, "mild", snapshot[0].Customization["spiceLevel"])
}
