package contract

import (
	"fmt"
	"strconv"
	"strings"
)

// RefKind discriminates what a drag or drop reference denotes. The set is
// closed; reorder logic switches on it exhaustively.
type RefKind string

const (
	RefItem   RefKind = "item"
	RefGroup  RefKind = "group"
	RefBucket RefKind = "bucket"
)

const groupRefPrefix = "group:"

// DragRef identifies what is being moved: a single item, or a whole group
// moving as a block.
type DragRef struct {
	Kind    RefKind
	ItemID  int64
	GroupID string
}

func ItemDrag(itemID int64) DragRef {
	return DragRef{Kind: RefItem, ItemID: itemID}
}

func GroupDrag(groupID string) DragRef {
	return DragRef{Kind: RefGroup, GroupID: groupID}
}

// ParseDragRef parses the wire form: a bare item id, or "group:<id>".
func ParseDragRef(s string) (DragRef, error) {
	if gid, ok := strings.CutPrefix(s, groupRefPrefix); ok {
		if gid == "" {
			return DragRef{}, fmt.Errorf("empty group reference")
		}
		return GroupDrag(gid), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return DragRef{}, fmt.Errorf("not an item reference: %q", s)
	}
	return ItemDrag(id), nil
}

// DropRef identifies where the dragged unit lands: before an item, before
// a group's first member, or at the end of the bucket.
type DropRef struct {
	Kind    RefKind
	ItemID  int64
	GroupID string
}

func ItemDrop(itemID int64) DropRef {
	return DropRef{Kind: RefItem, ItemID: itemID}
}

func GroupDrop(groupID string) DropRef {
	return DropRef{Kind: RefGroup, GroupID: groupID}
}

func BucketDrop() DropRef {
	return DropRef{Kind: RefBucket}
}

// ParseDropRef parses the wire form: "end" for the bucket itself, a bare
// item id, or "group:<id>".
func ParseDropRef(s string) (DropRef, error) {
	if s == "end" || s == "" {
		return BucketDrop(), nil
	}
	if gid, ok := strings.CutPrefix(s, groupRefPrefix); ok {
		if gid == "" {
			return DropRef{}, fmt.Errorf("empty group reference")
		}
		return GroupDrop(gid), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return DropRef{}, fmt.Errorf("not a drop reference: %q", s)
	}
	return ItemDrop(id), nil
}
