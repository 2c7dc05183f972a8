package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// EventPublisher pushes marketplace events to interested consumers.
// Publishing is best effort; callers log failures and move on.
type EventPublisher interface {
	PublishBikeCreated(ctx context.Context, bike *entity.Bike) error
	PublishBikeSold(ctx context.Context, sale *entity.Sale) error
}

type CreateBikeInput struct {
	Brand          string
	Model          string
	ProductionYear int
	Engine         string
	Description    string
	Price          float64
	Location       string
	IsSold         bool
}

type UpdateBikeInput struct {
	Price       *float64
	Location    *string
	Description *string
}

type BikeService interface {
	Create(ctx context.Context, ownerID string, input CreateBikeInput) (*BikeView, error)
	ListAvailable(ctx context.Context, page, limit int) (*FeedPage, error)
	ListByBrand(ctx context.Context, brand string, page, limit int) (*FeedPage, error)
	Search(ctx context.Context, query string, page, limit int) (*FeedPage, error)
	GetByID(ctx context.Context, bikeID string) (*BikeDetail, error)
	MyBikes(ctx context.Context, userID string, page, limit int) (*MyBikesView, error)
	Update(ctx context.Context, userID, bikeID string, input UpdateBikeInput) (*BikeView, error)
	Delete(ctx context.Context, userID, bikeID string) error
}

type bikeService struct {
	bikes   repository.BikeRepository
	images  repository.ImageRepository
	sales   repository.SaleRepository
	users   repository.UserRepository
	events  EventPublisher
	baseURL string
	log     logger.Logger
}

func NewBikeService(
	bikes repository.BikeRepository,
	images repository.ImageRepository,
	sales repository.SaleRepository,
	users repository.UserRepository,
	events EventPublisher,
	publicBaseURL string,
	log logger.Logger,
) BikeService {
	return &bikeService{
		bikes:   bikes,
		images:  images,
		sales:   sales,
		users:   users,
		events:  events,
		baseURL: publicBaseURL,
		log:     log,
	}
}

func (s *bikeService) Create(ctx context.Context, ownerID string, input CreateBikeInput) (*BikeView, error) {
	bike := &entity.Bike{
		Brand:          input.Brand,
		Model:          input.Model,
		ProductionYear: input.ProductionYear,
		Engine:         input.Engine,
		Description:    input.Description,
		Price:          input.Price,
		Location:       input.Location,
		OwnerID:        ownerID,
	}
	if err := bike.Validate(); err != nil {
		return nil, ErrMissingFields
	}

	created, err := s.bikes.Create(ctx, repository.CreateBikeParams{
		Brand:          input.Brand,
		Model:          input.Model,
		ProductionYear: input.ProductionYear,
		Engine:         input.Engine,
		Description:    input.Description,
		Price:          input.Price,
		Location:       input.Location,
		OwnerID:        ownerID,
		IsSold:         input.IsSold,
	})
	if err != nil {
		return nil, fmt.Errorf("create bike: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishBikeCreated(ctx, created); err != nil {
			s.log.Warnf("failed to publish bike.created for %s: %v", created.ID, err)
		}
	}

	view := toBikeView(created, nil)
	return &view, nil
}

func (s *bikeService) ListAvailable(ctx context.Context, page, limit int) (*FeedPage, error) {
	return s.listPage(ctx, repository.ListBikesParams{ExcludeSold: true}, page, limit, true)
}

func (s *bikeService) ListByBrand(ctx context.Context, brand string, page, limit int) (*FeedPage, error) {
	if brand == "" {
		return nil, ErrBrandRequired
	}
	return s.listPage(ctx, repository.ListBikesParams{Brand: brand, ExcludeSold: true}, page, limit, false)
}

func (s *bikeService) Search(ctx context.Context, query string, page, limit int) (*FeedPage, error) {
	query = normalizeQuery(query)
	return s.listPage(ctx, repository.ListBikesParams{Query: query, ExcludeSold: true}, page, limit, false)
}

// listPage runs a paged listing query and attaches galleries. The main
// feed drops listings without a single image; totals still reflect the
// unfiltered match count so page numbering stays stable.
func (s *bikeService) listPage(ctx context.Context, params repository.ListBikesParams, page, limit int, dropImageless bool) (*FeedPage, error) {
	params.Page, params.Limit = normalizePaging(page, limit)

	result, err := s.bikes.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list bikes: %w", err)
	}

	imagesByBike, err := s.galleriesFor(ctx, result.Bikes)
	if err != nil {
		return nil, err
	}

	views := make([]BikeView, 0, len(result.Bikes))
	for i := range result.Bikes {
		gallery := imagesByBike[result.Bikes[i].ID]
		if dropImageless && len(gallery) == 0 {
			continue
		}
		views = append(views, toBikeView(&result.Bikes[i], gallery))
	}

	return &FeedPage{
		Total: result.TotalCount,
		Page:  result.Page,
		Limit: result.Limit,
		Pages: result.TotalPages,
		Bikes: views,
	}, nil
}

func (s *bikeService) GetByID(ctx context.Context, bikeID string) (*BikeDetail, error) {
	if !primitive.IsValidObjectID(bikeID) {
		return nil, ErrInvalidBikeID
	}

	bike, err := s.bikes.GetByID(ctx, bikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, fmt.Errorf("get bike: %w", err)
	}

	gallery, err := s.galleriesFor(ctx, []entity.Bike{*bike})
	if err != nil {
		return nil, err
	}

	detail := &BikeDetail{BikeView: toBikeView(bike, gallery[bike.ID])}

	// Seller contact is a nicety; a missing user record should not
	// fail the whole detail request.
	if bike.OwnerID != "" {
		owner, err := s.users.GetByID(ctx, bike.OwnerID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.log.Warnf("failed to load owner %s for bike %s: %v", bike.OwnerID, bike.ID, err)
			}
		} else {
			detail.Owner = &OwnerContact{
				FirstName:   owner.FirstName,
				LastName:    owner.LastName,
				Email:       owner.Email,
				PhoneNumber: owner.PhoneNumber,
				Address:     owner.Address,
			}
		}
	}

	return detail, nil
}

func (s *bikeService) MyBikes(ctx context.Context, userID string, page, limit int) (*MyBikesView, error) {
	p, l := normalizePaging(page, limit)

	posted, err := s.bikes.List(ctx, repository.ListBikesParams{
		OwnerID: userID,
		Page:    p,
		Limit:   l,
	})
	if err != nil {
		return nil, fmt.Errorf("list posted bikes: %w", err)
	}

	imagesByBike, err := s.galleriesFor(ctx, posted.Bikes)
	if err != nil {
		return nil, err
	}

	postedViews := make([]BikeView, 0, len(posted.Bikes))
	for i := range posted.Bikes {
		postedViews = append(postedViews, toBikeView(&posted.Bikes[i], imagesByBike[posted.Bikes[i].ID]))
	}

	sales, err := s.sales.ListByBuyer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	salesByBike := make(map[string][]SaleView)
	boughtIDs := make([]string, 0, len(sales))
	for i := range sales {
		if _, seen := salesByBike[sales[i].BikeID]; !seen {
			boughtIDs = append(boughtIDs, sales[i].BikeID)
		}
		salesByBike[sales[i].BikeID] = append(salesByBike[sales[i].BikeID], toSaleView(&sales[i]))
	}

	boughtBikes, err := s.bikes.GetByIDs(ctx, boughtIDs)
	if err != nil {
		return nil, fmt.Errorf("load bought bikes: %w", err)
	}

	boughtImages, err := s.galleriesFor(ctx, boughtBikes)
	if err != nil {
		return nil, err
	}

	boughtViews := make([]BoughtBikeView, 0, len(boughtBikes))
	for i := range boughtBikes {
		id := boughtBikes[i].ID
		boughtViews = append(boughtViews, BoughtBikeView{
			BikeView:    toBikeView(&boughtBikes[i], boughtImages[id]),
			SoldRecords: salesByBike[id],
		})
	}

	return &MyBikesView{
		Posted: FeedPage{
			Total: posted.TotalCount,
			Page:  posted.Page,
			Limit: posted.Limit,
			Pages: posted.TotalPages,
			Bikes: postedViews,
		},
		Bought: BoughtSection{
			Total: len(boughtViews),
			Bikes: boughtViews,
		},
	}, nil
}

func (s *bikeService) Update(ctx context.Context, userID, bikeID string, input UpdateBikeInput) (*BikeView, error) {
	bike, err := s.ownedBike(ctx, userID, bikeID)
	if err != nil {
		return nil, err
	}

	updated, err := s.bikes.Update(ctx, repository.UpdateBikeParams{
		BikeID:      bike.ID,
		Price:       input.Price,
		Location:    input.Location,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, fmt.Errorf("update bike: %w", err)
	}

	gallery, err := s.galleriesFor(ctx, []entity.Bike{*updated})
	if err != nil {
		return nil, err
	}

	view := toBikeView(updated, gallery[updated.ID])
	return &view, nil
}

func (s *bikeService) Delete(ctx context.Context, userID, bikeID string) error {
	bike, err := s.ownedBike(ctx, userID, bikeID)
	if err != nil {
		return err
	}

	if err := s.bikes.Delete(ctx, bike.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBikeNotFound
		}
		return fmt.Errorf("delete bike: %w", err)
	}
	return nil
}

// ownedBike loads a bike and verifies the caller owns it.
func (s *bikeService) ownedBike(ctx context.Context, userID, bikeID string) (*entity.Bike, error) {
	if !primitive.IsValidObjectID(bikeID) {
		return nil, ErrInvalidBikeID
	}
	bike, err := s.bikes.GetByID(ctx, bikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, fmt.Errorf("get bike: %w", err)
	}
	if bike.OwnerID == "" || bike.OwnerID != userID {
		return nil, ErrForbidden
	}
	return bike, nil
}

// galleriesFor loads all images for a set of bikes in one query and
// groups them by bike id.
func (s *bikeService) galleriesFor(ctx context.Context, bikes []entity.Bike) (map[string][]ImageView, error) {
	if len(bikes) == 0 {
		return map[string][]ImageView{}, nil
	}
	ids := make([]string, 0, len(bikes))
	for i := range bikes {
		ids = append(ids, bikes[i].ID)
	}

	images, err := s.images.ListByBikeIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	grouped := make(map[string][]ImageView, len(bikes))
	for i := range images {
		grouped[images[i].BikeID] = append(grouped[images[i].BikeID], toImageView(s.baseURL, &images[i]))
	}
	return grouped, nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// normalizeQuery drops the literal "null"/"undefined" strings some
// clients send for an empty search box.
func normalizeQuery(query string) string {
	switch q := strings.TrimSpace(query); q {
	case "", "null", "undefined":
		return ""
	default:
		return q
	}
}
