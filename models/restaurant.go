package models

type Restaurant struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OwnerID     uint    `json:"owner_id" gorm:"not null;index"`
	Owner       *User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string  `json:"name" gorm:"not null"`
	BannerImage string  `json:"banner_image"`
	Rating      float64 `json:"rating" gorm:"default:4.0"`
	IsApproved  bool    `json:"is_approved" gorm:"not null"`
}

type MenuItem struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   *Restaurant `json:"-" gorm:"foreignKey:RestaurantID"`
	Name         string      `json:"name" gorm:"not null"`
	HindiName    string      `json:"hindi_name"`
	Price        float64     `json:"price" gorm:"not null"`
	ImagePath    string      `json:"image_path" gorm:"index"`
	IsAvailable  bool        `json:"is_available" gorm:"not null"`
}
