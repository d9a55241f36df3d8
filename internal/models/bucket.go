package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Bucket is one of the six fixed risk buckets used to summarize allocation.
type Bucket int

const (
	BucketDomesticEquity Bucket = iota
	BucketForeignEquity
	BucketCrypto
	BucketEmployment
	BucketBonds
	BucketCash

	BucketCount = 6
)

var bucketNames = [BucketCount]string{
	BucketDomesticEquity: "domestic_equity",
	BucketForeignEquity:  "foreign_equity",
	BucketCrypto:         "crypto",
	BucketEmployment:     "employment_equity",
	BucketBonds:          "bonds",
	BucketCash:           "cash",
}

// AllBuckets lists the buckets in their fixed reporting order.
var AllBuckets = [BucketCount]Bucket{
	BucketDomesticEquity,
	BucketForeignEquity,
	BucketCrypto,
	BucketEmployment,
	BucketBonds,
	BucketCash,
}

func (b Bucket) String() string {
	if b < 0 || int(b) >= BucketCount {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Target names used by older settings records.
var bucketAliases = map[string]Bucket{
	"il stocks": BucketDomesticEquity,
	"us stocks": BucketForeignEquity,
	"crypto":    BucketCrypto,
	"work":      BucketEmployment,
	"bonds":     BucketBonds,
	"cash":      BucketCash,
}

// ParseBucket resolves a bucket by its name or a legacy alias.
func ParseBucket(s string) (Bucket, bool) {
	for i, n := range bucketNames {
		if n == s {
			return Bucket(i), true
		}
	}
	if b, ok := bucketAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return b, true
	}
	return 0, false
}

// Allocation holds a value per risk bucket.
type Allocation [BucketCount]float64

// Total returns the sum across all buckets.
func (a Allocation) Total() float64 {
	var t float64
	for _, v := range a {
		t += v
	}
	return t
}

// Add accumulates b into a.
func (a *Allocation) Add(b Allocation) {
	for i := range a {
		a[i] += b[i]
	}
}

// MarshalJSON renders the allocation as an object keyed by bucket name.
func (a Allocation) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, BucketCount)
	for i, v := range a {
		m[bucketNames[i]] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts an object keyed by bucket name. Unknown keys are ignored.
func (a *Allocation) UnmarshalJSON(b []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*a = Allocation{}
	for k, v := range m {
		if bucket, ok := ParseBucket(k); ok {
			a[bucket] = v
		}
	}
	return nil
}
