package seed

import (
	"fmt"
	"log"

	"gastronet/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo-data generation. It layers a follow mesh over
// generated users, then engagement (posts, comments, likes, messages, job
// offers) on top of the mesh.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// ClearAll truncates every seeded table. Postgres only.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data")
	sql := `TRUNCATE TABLE notifications, messages, conversations, likes, comments, posts,
		follow_requests, follow_edges, job_offers, suppliers, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedSocialMesh creates count users and wires a follow mesh between them.
// Public accounts get direct follow edges; private accounts collect a mix
// of accepted edges and pending requests.
func (s *Seeder) SeedSocialMesh(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
		if i > 0 && i%100 == 0 {
			log.Printf("created %d users", i)
		}
	}

	rng := s.factory.rng
	for _, follower := range users {
		// Each user follows roughly a fifth of the mesh.
		targets := rng.Perm(len(users))
		wanted := len(users)/5 + 1
		made := 0
		for _, ti := range targets {
			target := users[ti]
			if target.ID == follower.ID {
				continue
			}
			if made >= wanted {
				break
			}
			if target.IsPrivate && rng.Float32() < 0.5 {
				if err := s.factory.CreateFollowRequest(follower, target); err != nil {
					return nil, fmt.Errorf("create follow request: %w", err)
				}
			} else {
				if err := s.factory.CreateFollowEdge(follower, target); err != nil {
					return nil, fmt.Errorf("create follow edge: %w", err)
				}
			}
			made++
		}
	}

	log.Printf("seeded follow mesh for %d users", len(users))
	return users, nil
}

// SeedEngagement creates posts, comments, likes, direct messages between
// mutual followers, and job offers for owner accounts.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed engagement for")
	}
	rng := s.factory.rng

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)

		for c := 0; c < rng.Intn(4); c++ {
			commenter := users[rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
		}
		liked := map[uint]bool{}
		for l := 0; l < rng.Intn(6); l++ {
			liker := users[rng.Intn(len(users))]
			if liked[liker.ID] {
				continue
			}
			liked[liker.ID] = true
			if err := s.factory.CreateLike(liker, post); err != nil {
				return nil, fmt.Errorf("create like: %w", err)
			}
		}
	}
	log.Printf("created %d posts", len(posts))

	if err := s.seedConversations(users); err != nil {
		return nil, err
	}
	if err := s.seedJobOffers(users); err != nil {
		return nil, err
	}

	return posts, nil
}

// seedConversations opens threads only between mutual followers, matching
// the messaging gate enforced by the API.
func (s *Seeder) seedConversations(users []*models.User) error {
	pairs, err := s.mutualPairs()
	if err != nil {
		return err
	}

	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	rng := s.factory.rng
	made := 0
	for _, p := range pairs {
		if made >= len(users) {
			break
		}
		a, b := byID[p[0]], byID[p[1]]
		if a == nil || b == nil {
			continue
		}
		conv, convErr := s.factory.CreateConversation(a, b)
		if convErr != nil {
			return fmt.Errorf("create conversation: %w", convErr)
		}
		for m := 0; m < 2+rng.Intn(6); m++ {
			sender := a
			if rng.Intn(2) == 0 {
				sender = b
			}
			if _, msgErr := s.factory.CreateMessage(conv, sender); msgErr != nil {
				return fmt.Errorf("create message: %w", msgErr)
			}
		}
		made++
	}
	log.Printf("created %d conversations", made)
	return nil
}

// mutualPairs returns (a, b) user ID pairs where both follow edges exist,
// each pair once with a < b.
func (s *Seeder) mutualPairs() ([][2]uint, error) {
	type row struct {
		A uint
		B uint
	}
	var rows []row
	err := s.db.Raw(`
		SELECT e1.follower_id AS a, e1.followee_id AS b
		FROM follow_edges e1
		JOIN follow_edges e2
		  ON e2.follower_id = e1.followee_id AND e2.followee_id = e1.follower_id
		WHERE e1.follower_id < e1.followee_id`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query mutual pairs: %w", err)
	}
	pairs := make([][2]uint, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, [2]uint{r.A, r.B})
	}
	return pairs, nil
}

func (s *Seeder) seedJobOffers(users []*models.User) error {
	rng := s.factory.rng
	made := 0
	for _, u := range users {
		if u.Role != models.RoleRestaurantOwner && u.Role != models.RoleRestaurant {
			continue
		}
		for i := 0; i < 1+rng.Intn(2); i++ {
			offer, err := s.factory.CreateJobOffer(u)
			if err != nil {
				return fmt.Errorf("create job offer: %w", err)
			}
			if rng.Float32() < 0.2 {
				offer.Status = models.JobOfferStatusClosed
				if err := s.db.Save(offer).Error; err != nil {
					return fmt.Errorf("close job offer: %w", err)
				}
			}
			made++
		}
	}
	log.Printf("created %d job offers", made)
	return nil
}
