package material

// Table: materials. No primary key; (code, deposit) is the effective lookup key
// and duplicates are tolerated (first occurrence wins).
type Material struct {
	Code    string `gorm:"column:code;type:text" json:"code"`
	Name    string `gorm:"column:name;type:text" json:"name"`
	Deposit string `gorm:"column:deposit;type:text" json:"deposit"`
	SAP     int64  `gorm:"column:sap;type:integer" json:"sap"`
}

func (Material) TableName() string { return "materials" }
