package mongo

import (
	"strconv"
	"strings"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names match the original deployment's data so existing
// documents keep working.
const (
	bikeCollectionName    = "postbikes"
	imageCollectionName   = "images"
	saleCollectionName    = "solds"
	userCollectionName    = "users"
	catalogCollectionName = "bikes"
	contactCollectionName = "contacts"
)

type bikeDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Brand string             `bson:"brand"`
	Model string             `bson:"model"`
	// ProductionYear is polymorphic in stored data: legacy documents
	// carry a BSON datetime, newer ones an integer year or a numeric
	// string. It is normalized on decode.
	ProductionYear interface{} `bson:"production_year"`
	Engine         string      `bson:"engine"`
	Description    string      `bson:"description,omitempty"`
	Price          float64     `bson:"price"`
	Location       string      `bson:"location"`
	// UserID is polymorphic in stored data: a raw ObjectID, a hex
	// string, or an expanded object. It is normalized on decode.
	UserID    interface{} `bson:"user_id"`
	IsSold    bool        `bson:"is_sold"`
	Published time.Time   `bson:"published"`
}

func (d *bikeDoc) toEntity() *entity.Bike {
	return &entity.Bike{
		ID:             d.ID.Hex(),
		Brand:          d.Brand,
		Model:          d.Model,
		ProductionYear: yearOf(d.ProductionYear),
		Engine:         d.Engine,
		Description:    d.Description,
		Price:          d.Price,
		Location:       d.Location,
		OwnerID:        entity.ResolveOwnerID(d.UserID),
		IsSold:         d.IsSold,
		Published:      d.Published,
	}
}

type imageDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	BikeID   primitive.ObjectID `bson:"bike_id"`
	URL      string             `bson:"url,omitempty"`
	Path     string             `bson:"path,omitempty"`
	MimeType string             `bson:"mimeType,omitempty"`
	Filename string             `bson:"filename,omitempty"`
}

func (d *imageDoc) toEntity() *entity.Image {
	return &entity.Image{
		ID:       d.ID.Hex(),
		BikeID:   d.BikeID.Hex(),
		URL:      d.URL,
		Path:     d.Path,
		MimeType: d.MimeType,
		Filename: d.Filename,
	}
}

type saleDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	BikeID   primitive.ObjectID `bson:"bike_id"`
	BuyerID  interface{}        `bson:"buyer_id"`
	SellerID interface{}        `bson:"seller_id"`
	Price    float64            `bson:"price"`
	Notes    string             `bson:"notes,omitempty"`
	SoldDate time.Time          `bson:"sold_date"`
}

func (d *saleDoc) toEntity() *entity.Sale {
	return &entity.Sale{
		ID:       d.ID.Hex(),
		BikeID:   d.BikeID.Hex(),
		BuyerID:  entity.ResolveOwnerID(d.BuyerID),
		SellerID: entity.ResolveOwnerID(d.SellerID),
		Price:    d.Price,
		Notes:    d.Notes,
		SoldDate: d.SoldDate,
	}
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	LastName    string             `bson:"last_name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	PhoneNumber string             `bson:"phone_number,omitempty"`
	Address     string             `bson:"address,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:          d.ID.Hex(),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Password:    d.Password,
		PhoneNumber: d.PhoneNumber,
		Address:     d.Address,
		CreatedAt:   d.CreatedAt,
	}
}

// yearOf normalizes a stored production_year value to a plain year.
func yearOf(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case primitive.DateTime:
		return t.Time().UTC().Year()
	case time.Time:
		return t.UTC().Year()
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	default:
		return 0
	}
}

// userRef produces the stored form of a user reference: an ObjectID
// when the id is valid hex, the raw string otherwise.
func userRef(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
