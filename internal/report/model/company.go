package model

import "reportd/internal/report/schema"

type Company struct {
	Meta   `bson:",inline"`
	Name   string `bson:"name" json:"name"`
	Status int    `bson:"status" json:"status"`
}

const CompaniesCollection = "companies"

var CompanySchema = schema.New("company",
	schema.Rule{Field: "name", Kind: schema.String, Required: true},
	schema.Rule{Field: "status", Kind: schema.Int, Required: true, Enum: []int{CompanyActive, CompanyInactive, CompanyDeleted}},
)
