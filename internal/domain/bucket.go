package domain

import "fmt"

// BucketKey identifies the set of items sharing a (day, variant, global
// variant) placement. Variant fields are always the effective (defaulted)
// values; construct keys through the schedule package, not by hand.
type BucketKey struct {
	Day             string
	VariantID       string
	GlobalVariantID string
}

func (k BucketKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Day, k.VariantID, k.GlobalVariantID)
}
