package models

type Province struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;unique"`

	Cities []City
}

type City struct {
	ID         uint `gorm:"primaryKey"`
	ProvinceID uint `gorm:"index;not null"`
	Province   Province
	Name       string `gorm:"size:100;not null"`
}
