// Package seed provides helpers to create development and demo data for
// the application database.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"gastronet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers int
	NumPosts int
	// SkipBcrypt stores the demo password in plain text. Only useful for
	// fast local seeding and sqlite-backed tests.
	SkipBcrypt bool
	// MaxDays spreads generated created_at timestamps over this many days.
	MaxDays int
}

// Factory builds domain entities and persists them to the database. It is
// a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng}
}

var seedRoles = []models.Role{
	models.RoleRestaurantOwner,
	models.RoleRestaurant,
	models.RoleEmployee,
	models.RoleEmployee,
	models.RoleEmployee,
	models.RoleSupplier,
	models.RoleInfluencer,
}

var postTopics = []string{
	"Tonight's special: %s with %s.",
	"Finally nailed the %s. Three weeks of testing paid off.",
	"Looking for a reliable %s supplier in the area, recommendations welcome.",
	"New menu drops Friday. Sneak peek: %s.",
	"Staff meal today was %s. Best part of the shift.",
	"Visited the market this morning, the %s looked incredible.",
}

var dishes = []string{
	"braised short rib", "wild mushroom risotto", "burrata", "duck confit",
	"sourdough focaccia", "miso glazed cod", "lamb tagine", "beef tartare",
	"roasted bone marrow", "seasonal vegetable terrine",
}

func (f *Factory) randomDish() string {
	return dishes[f.rng.Intn(len(dishes))]
}

// handleFromName turns a generated name into a valid handle.
func handleFromName(name string, n int) string {
	h := strings.ToLower(name)
	h = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '.', r == '-':
			return '_'
		default:
			return -1
		}
	}, h)
	h = strings.Trim(h, "_")
	if h == "" {
		h = "user"
	}
	return fmt.Sprintf("%s_%d", h, n)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	role := seedRoles[f.rng.Intn(len(seedRoles))]

	user := &models.User{
		Handle:      handleFromName(name, gofakeit.Number(100, 99999)),
		Email:       gofakeit.Email(),
		DisplayName: name,
		Role:        role,
		IsPrivate:   f.rng.Float32() < 0.3,
		IsAvailable: role == models.RoleEmployee && f.rng.Float32() < 0.5,
		Bio:         gofakeit.Sentence(10),
		Location:    gofakeit.City(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	if role == models.RoleRestaurant {
		user.DisplayName = gofakeit.Company()
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	template := postTopics[f.rng.Intn(len(postTopics))]
	content := template
	switch strings.Count(template, "%s") {
	case 1:
		content = fmt.Sprintf(template, f.randomDish())
	case 2:
		content = fmt.Sprintf(template, f.randomDish(), f.randomDish())
	}

	post := &models.Post{
		Content: content,
		UserID:  user.ID,
	}
	if f.rng.Float32() < 0.4 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the provided post by the provided
// user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateFollowEdge persists a follow edge from follower to followee.
func (f *Factory) CreateFollowEdge(follower, followee *models.User) error {
	edge := &models.FollowEdge{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(edge).Error
}

// CreateFollowRequest persists a pending follow request against a private
// account.
func (f *Factory) CreateFollowRequest(requester, target *models.User) error {
	req := &models.FollowRequest{
		RequesterID: requester.ID,
		TargetID:    target.ID,
	}
	return f.db.Create(req).Error
}

// CreateConversation persists a direct-message thread between two users.
func (f *Factory) CreateConversation(a, b *models.User) (*models.Conversation, error) {
	conv := &models.Conversation{
		UserAID: a.ID,
		UserBID: b.ID,
	}
	if err := f.db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// CreateMessage persists a message in the provided conversation from the
// provided sender.
func (f *Factory) CreateMessage(conversation *models.Conversation, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       sender.ID,
		Content:        gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateJobOffer persists a job listing owned by the provided user.
func (f *Factory) CreateJobOffer(owner *models.User, overrides ...func(*models.JobOffer)) (*models.JobOffer, error) {
	positions := []string{"Sous Chef", "Line Cook", "Pastry Chef", "Barista", "Sommelier", "Head Waiter", "Kitchen Porter"}
	offer := &models.JobOffer{
		OwnerID:     owner.ID,
		Title:       fmt.Sprintf("%s wanted", positions[f.rng.Intn(len(positions))]),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Position:    positions[f.rng.Intn(len(positions))],
		Location:    gofakeit.City(),
		Salary:      fmt.Sprintf("%d-%d EUR/month", 2000+f.rng.Intn(10)*100, 3200+f.rng.Intn(10)*100),
		Status:      models.JobOfferStatusActive,
	}

	for _, override := range overrides {
		override(offer)
	}

	if err := f.db.Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// CreateSupplier persists a directory entry for a goods provider.
func (f *Factory) CreateSupplier(overrides ...func(*models.Supplier)) (*models.Supplier, error) {
	categories := []string{"produce", "meat", "seafood", "dairy", "beverages", "equipment", "bakery"}
	supplier := &models.Supplier{
		Name:        gofakeit.Company(),
		Category:    categories[f.rng.Intn(len(categories))],
		Location:    gofakeit.City(),
		Description: gofakeit.Sentence(12),
		Phone:       gofakeit.Phone(),
		Email:       gofakeit.Email(),
		Website:     gofakeit.URL(),
	}

	for _, override := range overrides {
		override(supplier)
	}

	if err := f.db.Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// CreateNotification persists a notification for user about an action by
// fromUser.
func (f *Factory) CreateNotification(user, fromUser *models.User, typ models.NotificationType, entityID uint) error {
	n := &models.Notification{
		UserID:     user.ID,
		FromUserID: fromUser.ID,
		Type:       typ,
		EntityID:   entityID,
	}
	if err := f.db.Create(n).Error; err != nil {
		log.Printf("failed to create notification: %v", err)
		return err
	}
	return nil
}
