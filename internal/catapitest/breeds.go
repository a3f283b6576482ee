package catapitest

import "github.com/samvad-hq/catapi-contract/internal/domain"

var breeds = func() []domain.Breed {
	names := []struct{ id, name, origin string }{
		{"abys", "Abyssinian", "Egypt"},
		{"aege", "Aegean", "Greece"},
		{"abob", "American Bobtail", "United States"},
		{"acur", "American Curl", "United States"},
		{"asho", "American Shorthair", "United States"},
		{"awir", "American Wirehair", "United States"},
		{"amau", "Arabian Mau", "United Arab Emirates"},
		{"amis", "Australian Mist", "Australia"},
		{"bali", "Balinese", "United States"},
		{"bamb", "Bambino", "United States"},
		{"beng", "Bengal", "United States"},
		{"birm", "Birman", "France"},
		{"bomb", "Bombay", "United States"},
		{"bslo", "British Longhair", "United Kingdom"},
		{"bsho", "British Shorthair", "United Kingdom"},
		{"bure", "Burmese", "Burma"},
		{"buri", "Burmilla", "United Kingdom"},
		{"cspa", "California Spangled", "United States"},
		{"ctif", "Chantilly-Tiffany", "United States"},
		{"char", "Chartreux", "France"},
	}
	out := make([]domain.Breed, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Breed{
			ID:          n.id,
			Name:        n.name,
			Origin:      n.origin,
			Description: n.name + " cats are a recognised breed originating in " + n.origin + ".",
		})
	}
	return out
}()
