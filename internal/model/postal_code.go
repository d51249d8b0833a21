// File: internal/model/postal_code.go
package model

// PostalCode maps an INSEE municipality code to one of its postal codes.
// Several rows may share the same InseeCode.
type PostalCode struct {
	ID         int    `db:"id" json:"id"`
	InseeCode  string `db:"insee_code" json:"insee_code"`
	PostalCode int    `db:"postal_code" json:"postal_code"`
	City       string `db:"city" json:"city"`
}
