package service

import (
	"strings"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
)

// ImageView is an image as it appears inside a bike payload.
type ImageView struct {
	ID       string `json:"_id"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// ImageRef is the shape returned by the per-bike images endpoint.
type ImageRef struct {
	URL      string  `json:"url"`
	Filename *string `json:"filename"`
	ID       string  `json:"_id"`
}

// BikeView is a listing enriched with its gallery.
type BikeView struct {
	ID             string      `json:"_id"`
	Brand          string      `json:"brand"`
	Model          string      `json:"model"`
	ProductionYear int         `json:"production_year"`
	Engine         string      `json:"engine"`
	Description    string      `json:"description,omitempty"`
	Price          float64     `json:"price"`
	Location       string      `json:"location"`
	OwnerID        string      `json:"user_id"`
	IsSold         bool        `json:"is_sold"`
	Published      time.Time   `json:"published"`
	Images         []ImageView `json:"images"`
	FirstImageURL  *string     `json:"firstImageUrl"`
}

// OwnerContact is the seller contact block on the detail view.
type OwnerContact struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// BikeDetail is the single-listing view with seller contact attached.
type BikeDetail struct {
	BikeView
	Owner *OwnerContact `json:"owner,omitempty"`
}

// FeedPage is one page of listings plus pagination metadata.
type FeedPage struct {
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Pages int        `json:"pages"`
	Bikes []BikeView `json:"bikes"`
}

// SaleView is a completed sale record.
type SaleView struct {
	ID       string    `json:"_id"`
	BikeID   string    `json:"bike_id"`
	BuyerID  string    `json:"buyer_id"`
	SellerID string    `json:"seller_id"`
	Price    float64   `json:"price"`
	Notes    string    `json:"notes,omitempty"`
	SoldDate time.Time `json:"sold_date"`
}

// BoughtBikeView pairs a purchased bike with its sale records.
type BoughtBikeView struct {
	BikeView
	SoldRecords []SaleView `json:"soldRecords"`
}

// BoughtSection is the purchases half of the my-bikes view.
type BoughtSection struct {
	Total int              `json:"total"`
	Bikes []BoughtBikeView `json:"bikes"`
}

// MyBikesView combines a user's own listings with their purchases.
type MyBikesView struct {
	Posted FeedPage      `json:"posted"`
	Bought BoughtSection `json:"bought"`
}

// UserView is a user profile without credentials.
type UserView struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// resolveImageURL turns a stored image record into a URL clients can
// fetch. An absolute stored URL wins; a relative one is prefixed with
// the public base; otherwise the basename of the stored path is served
// from the uploads directory.
func resolveImageURL(baseURL string, img *entity.Image) string {
	if img.URL != "" {
		if strings.HasPrefix(img.URL, "http://") || strings.HasPrefix(img.URL, "https://") {
			return img.URL
		}
		if strings.HasPrefix(img.URL, "/") {
			return baseURL + img.URL
		}
		return baseURL + "/" + img.URL
	}
	name := img.Path
	if name == "" {
		name = img.Filename
	}
	return baseURL + "/uploads/" + baseName(name)
}

// baseName strips any directory prefix, accepting both separator
// styles since stored paths may come from either.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, "/\\"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func toImageView(baseURL string, img *entity.Image) ImageView {
	return ImageView{
		ID:       img.ID,
		URL:      resolveImageURL(baseURL, img),
		MimeType: img.MimeType,
		Filename: img.Filename,
	}
}

func toBikeView(bike *entity.Bike, images []ImageView) BikeView {
	if images == nil {
		images = []ImageView{}
	}
	v := BikeView{
		ID:             bike.ID,
		Brand:          bike.Brand,
		Model:          bike.Model,
		ProductionYear: bike.ProductionYear,
		Engine:         bike.Engine,
		Description:    bike.Description,
		Price:          bike.Price,
		Location:       bike.Location,
		OwnerID:        bike.OwnerID,
		IsSold:         bike.IsSold,
		Published:      bike.Published,
		Images:         images,
	}
	if len(images) > 0 {
		v.FirstImageURL = &images[0].URL
	}
	return v
}

func toSaleView(sale *entity.Sale) SaleView {
	return SaleView{
		ID:       sale.ID,
		BikeID:   sale.BikeID,
		BuyerID:  sale.BuyerID,
		SellerID: sale.SellerID,
		Price:    sale.Price,
		Notes:    sale.Notes,
		SoldDate: sale.SoldDate,
	}
}

func toUserView(user *entity.User) UserView {
	return UserView{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
	}
}
