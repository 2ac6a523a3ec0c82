// internal/models/restaurant.go
package models

// Restaurant is the detail record kept in the key-value store.
type Restaurant struct {
	BusinessID  string  `json:"businessID" dynamodbav:"businessID" db:"business_id"`
	Name        string  `json:"name" dynamodbav:"name" db:"name"`
	Address     string  `json:"address" dynamodbav:"address" db:"address"`
	Cuisine     string  `json:"cuisine,omitempty" dynamodbav:"cuisine,omitempty" db:"cuisine"`
	Rating      float64 `json:"rating,omitempty" dynamodbav:"rating,omitempty" db:"rating"`
	ReviewCount int     `json:"reviewCount,omitempty" dynamodbav:"reviewCount,omitempty" db:"review_count"`
	ZipCode     string  `json:"zipCode,omitempty" dynamodbav:"zipCode,omitempty" db:"zip_code"`
}

// SearchHit is one search index match.
type SearchHit struct {
	BusinessID string  `json:"businessID"`
	Score      float64 `json:"score"`
}
