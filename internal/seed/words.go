package seed

import (
	"sort"

	"retailcore/pkg/domain"
)

// Vocabulary pools for fixture generation. Small on purpose: variety enough
// to read naturally, little enough to keep fixtures reviewable.

var companyStems = []string{
	"Northwind", "Cascade", "Harbor", "Summit", "Bluebird", "Ironwood",
	"Lakeside", "Granite", "Silverline", "Redwood", "Meridian", "Pioneer",
}

var companySuffixes = []string{"Trading", "Supply Co", "Wholesale", "Distribution", "Goods", "Imports"}

var productCategories = []string{"Electronics", "Home", "Clothing", "Sports", "Toys"}

var productNouns = []string{
	"Lamp", "Speaker", "Jacket", "Racket", "Puzzle", "Kettle", "Backpack",
	"Monitor", "Blender", "Scarf", "Drone", "Notebook",
}

var firstNames = []string{
	"Ava", "Ben", "Clara", "Diego", "Elena", "Felix", "Grace", "Hassan",
	"Iris", "Jonas", "Kira", "Liam", "Mona", "Noah", "Priya", "Quinn",
}

var lastNames = []string{
	"Anderson", "Baker", "Castillo", "Dixon", "Edwards", "Fischer",
	"Gupta", "Hoffman", "Ivanov", "Jensen", "Khan", "Lindgren",
}

var streetNames = []string{"Maple", "Oak", "Cedar", "Elm", "Willow", "Birch", "Aspen", "Juniper"}

var streetSuffixes = []string{"St", "Ave", "Blvd", "Ln", "Dr"}

var cities = []string{
	"Springfield", "Riverton", "Fairview", "Brookdale", "Lakewood",
	"Milford", "Ashland", "Greenville",
}

var states = []string{"CA", "NY", "TX", "WA", "IL", "GA", "CO", "OR"}

var emailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "retail-store.com", "provider.net"}

var paymentMethods = []string{"Credit Card", "PayPal", "Debit"}

var cancelReasons = []string{"Changed mind", "Found cheaper", "Wait too long"}

// orderedIDs returns a collection's identifiers in numeric order, which is
// the order dense fixtures were generated in.
func orderedIDs(records map[string]domain.Record) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aok := domain.ParseID(ids[i])
		b, bok := domain.ParseID(ids[j])
		if aok && bok {
			return a < b
		}
		if aok != bok {
			return aok
		}
		return ids[i] < ids[j]
	})
	return ids
}
