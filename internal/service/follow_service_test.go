package service

import (
	"context"
	"errors"
	"testing"

	"gastronet/internal/models"
)

type followRepoStub struct {
	createEdgeFn         func(context.Context, uint, uint) error
	deleteEdgeFn         func(context.Context, uint, uint) error
	edgeExistsFn         func(context.Context, uint, uint) (bool, error)
	createRequestFn      func(context.Context, uint, uint) error
	deleteRequestFn      func(context.Context, uint, uint) error
	requestExistsFn      func(context.Context, uint, uint) (bool, error)
	promoteRequestFn     func(context.Context, uint, uint) error
	getFollowersFn       func(context.Context, uint) ([]models.User, error)
	getFollowingFn       func(context.Context, uint) ([]models.User, error)
	getPendingRequestsFn func(context.Context, uint) ([]models.FollowRequest, error)
	countsFn             func(context.Context, uint) (models.FollowCounts, error)
	snapshotFn           func(context.Context, uint) (*models.FollowSnapshot, error)
}

func (s *followRepoStub) CreateEdge(ctx context.Context, followerID, followeeID uint) error {
	return s.createEdgeFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) DeleteEdge(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteEdgeFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) EdgeExists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.edgeExistsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) CreateRequest(ctx context.Context, requesterID, targetID uint) error {
	return s.createRequestFn(ctx, requesterID, targetID)
}
func (s *followRepoStub) DeleteRequest(ctx context.Context, requesterID, targetID uint) error {
	return s.deleteRequestFn(ctx, requesterID, targetID)
}
func (s *followRepoStub) RequestExists(ctx context.Context, requesterID, targetID uint) (bool, error) {
	return s.requestExistsFn(ctx, requesterID, targetID)
}
func (s *followRepoStub) PromoteRequest(ctx context.Context, requesterID, targetID uint) error {
	return s.promoteRequestFn(ctx, requesterID, targetID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID)
}
func (s *followRepoStub) GetPendingRequests(ctx context.Context, targetID uint) ([]models.FollowRequest, error) {
	return s.getPendingRequestsFn(ctx, targetID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (models.FollowCounts, error) {
	return s.countsFn(ctx, userID)
}
func (s *followRepoStub) Snapshot(ctx context.Context, userID uint) (*models.FollowSnapshot, error) {
	return s.snapshotFn(ctx, userID)
}

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByHandleFn      func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
	searchFn           func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDWithPostsFn: func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByHandleFn:      func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:           func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createEdgeFn:         func(context.Context, uint, uint) error { return nil },
		deleteEdgeFn:         func(context.Context, uint, uint) error { return nil },
		edgeExistsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		createRequestFn:      func(context.Context, uint, uint) error { return nil },
		deleteRequestFn:      func(context.Context, uint, uint) error { return nil },
		requestExistsFn:      func(context.Context, uint, uint) (bool, error) { return false, nil },
		promoteRequestFn:     func(context.Context, uint, uint) error { return nil },
		getFollowersFn:       func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getFollowingFn:       func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getPendingRequestsFn: func(context.Context, uint) ([]models.FollowRequest, error) { return nil, nil },
		countsFn:             func(context.Context, uint) (models.FollowCounts, error) { return models.FollowCounts{}, nil },
		snapshotFn: func(_ context.Context, id uint) (*models.FollowSnapshot, error) {
			return &models.FollowSnapshot{UserID: id}, nil
		},
	}
}

// memFollowRepo is an in-memory FollowRepository used to exercise whole
// follow/request/messaging flows through the service.
type memFollowRepo struct {
	edges    map[[2]uint]bool
	requests map[[2]uint]bool
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{
		edges:    make(map[[2]uint]bool),
		requests: make(map[[2]uint]bool),
	}
}

func (m *memFollowRepo) CreateEdge(_ context.Context, followerID, followeeID uint) error {
	m.edges[[2]uint{followerID, followeeID}] = true
	return nil
}
func (m *memFollowRepo) DeleteEdge(_ context.Context, followerID, followeeID uint) error {
	delete(m.edges, [2]uint{followerID, followeeID})
	return nil
}
func (m *memFollowRepo) EdgeExists(_ context.Context, followerID, followeeID uint) (bool, error) {
	return m.edges[[2]uint{followerID, followeeID}], nil
}
func (m *memFollowRepo) CreateRequest(_ context.Context, requesterID, targetID uint) error {
	m.requests[[2]uint{requesterID, targetID}] = true
	return nil
}
func (m *memFollowRepo) DeleteRequest(_ context.Context, requesterID, targetID uint) error {
	delete(m.requests, [2]uint{requesterID, targetID})
	return nil
}
func (m *memFollowRepo) RequestExists(_ context.Context, requesterID, targetID uint) (bool, error) {
	return m.requests[[2]uint{requesterID, targetID}], nil
}
func (m *memFollowRepo) PromoteRequest(_ context.Context, requesterID, targetID uint) error {
	key := [2]uint{requesterID, targetID}
	if !m.requests[key] {
		return models.NewNotFoundError("Follow request", requesterID)
	}
	delete(m.requests, key)
	m.edges[key] = true
	return nil
}
func (m *memFollowRepo) GetFollowers(_ context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	for pair := range m.edges {
		if pair[1] == userID {
			users = append(users, models.User{ID: pair[0]})
		}
	}
	return users, nil
}
func (m *memFollowRepo) GetFollowing(_ context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	for pair := range m.edges {
		if pair[0] == userID {
			users = append(users, models.User{ID: pair[1]})
		}
	}
	return users, nil
}
func (m *memFollowRepo) GetPendingRequests(_ context.Context, targetID uint) ([]models.FollowRequest, error) {
	var reqs []models.FollowRequest
	for pair := range m.requests {
		if pair[1] == targetID {
			reqs = append(reqs, models.FollowRequest{RequesterID: pair[0], TargetID: pair[1]})
		}
	}
	return reqs, nil
}
func (m *memFollowRepo) Counts(_ context.Context, userID uint) (models.FollowCounts, error) {
	var counts models.FollowCounts
	for pair := range m.edges {
		if pair[1] == userID {
			counts.FollowersCount++
		}
		if pair[0] == userID {
			counts.FollowingCount++
		}
	}
	return counts, nil
}
func (m *memFollowRepo) Snapshot(_ context.Context, userID uint) (*models.FollowSnapshot, error) {
	snap := &models.FollowSnapshot{UserID: userID}
	for pair := range m.edges {
		if pair[0] == userID {
			snap.Following = append(snap.Following, pair[1])
		}
		if pair[1] == userID {
			snap.Followers = append(snap.Followers, pair[0])
		}
	}
	return snap, nil
}

func publicUserRepo() *userRepoStub {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: false}, nil
	}
	return repo
}

func privateUserRepo() *userRepoStub {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: true}, nil
	}
	return repo
}

func TestFollowServiceFollowSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	err := svc.Follow(context.Background(), 7, 7)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFollowServiceFollowPrivateTarget(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), privateUserRepo())
	err := svc.Follow(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFollowServiceFollowMissingTarget(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: id}, nil
	}

	svc := NewFollowService(noopFollowRepo(), repo)
	err := svc.Follow(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestFollowServiceFollowThenUnfollow(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	svc := NewFollowService(repo, publicUserRepo())

	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}
	following, err := svc.IsFollowing(ctx, 1, 2)
	if err != nil || !following {
		t.Fatalf("expected 1 to follow 2, got following=%v err=%v", following, err)
	}
	reverse, err := svc.IsFollowing(ctx, 2, 1)
	if err != nil || reverse {
		t.Fatalf("expected no reverse edge, got following=%v err=%v", reverse, err)
	}

	counts, err := svc.GetFollowCounts(ctx, 2)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.FollowersCount != 1 || counts.FollowingCount != 0 {
		t.Fatalf("unexpected counts for 2: %+v", counts)
	}

	if err := svc.Unfollow(ctx, 1, 2); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	following, err = svc.IsFollowing(ctx, 1, 2)
	if err != nil || following {
		t.Fatalf("expected edge removed, got following=%v err=%v", following, err)
	}
}

func TestFollowServiceFollowIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	svc := NewFollowService(repo, publicUserRepo())

	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("second follow: %v", err)
	}

	counts, err := svc.GetFollowCounts(ctx, 2)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.FollowersCount != 1 {
		t.Fatalf("expected a single edge after duplicate follow, got %d", counts.FollowersCount)
	}
}

func TestFollowServiceUnfollowMissingEdge(t *testing.T) {
	svc := NewFollowService(newMemFollowRepo(), publicUserRepo())
	if err := svc.Unfollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("expected unfollow of missing edge to succeed, got %v", err)
	}
}

func TestFollowServiceRequestAcceptFlow(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	svc := NewFollowService(repo, privateUserRepo())

	if err := svc.RequestToFollow(ctx, 1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}

	// Requesting creates a pending request, not an edge.
	following, err := svc.IsFollowing(ctx, 1, 2)
	if err != nil || following {
		t.Fatalf("expected no edge before accept, got following=%v err=%v", following, err)
	}
	pending, err := svc.GetPendingRequests(ctx, 2)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].RequesterID != 1 {
		t.Fatalf("unexpected pending requests: %+v", pending)
	}

	if err := svc.AcceptFollowRequest(ctx, 2, 1); err != nil {
		t.Fatalf("accept: %v", err)
	}

	following, err = svc.IsFollowing(ctx, 1, 2)
	if err != nil || !following {
		t.Fatalf("expected edge after accept, got following=%v err=%v", following, err)
	}
	pending, err = svc.GetPendingRequests(ctx, 2)
	if err != nil {
		t.Fatalf("pending after accept: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected request consumed by accept, got %+v", pending)
	}
}

func TestFollowServiceDeclineLeavesNoEdge(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	svc := NewFollowService(repo, privateUserRepo())

	if err := svc.RequestToFollow(ctx, 1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := svc.DeclineFollowRequest(ctx, 2, 1); err != nil {
		t.Fatalf("decline: %v", err)
	}

	following, err := svc.IsFollowing(ctx, 1, 2)
	if err != nil || following {
		t.Fatalf("expected no edge after decline, got following=%v err=%v", following, err)
	}
	pending, err := svc.GetPendingRequests(ctx, 2)
	if err != nil || len(pending) != 0 {
		t.Fatalf("expected no pending requests after decline, got %+v err=%v", pending, err)
	}
}

func TestFollowServiceAcceptWithoutRequest(t *testing.T) {
	svc := NewFollowService(newMemFollowRepo(), privateUserRepo())
	err := svc.AcceptFollowRequest(context.Background(), 2, 1)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestFollowServiceRequestWhileAlreadyFollowing(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	repo.edges[[2]uint{1, 2}] = true

	svc := NewFollowService(repo, privateUserRepo())
	err := svc.RequestToFollow(ctx, 1, 2)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFollowServiceStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	repo.edges[[2]uint{1, 2}] = true
	repo.requests[[2]uint{1, 3}] = true

	svc := NewFollowService(repo, publicUserRepo())

	cases := []struct {
		name     string
		viewerID uint
		targetID uint
		want     models.FollowStatus
	}{
		{"own profile", 1, 1, models.FollowStatusSelf},
		{"following", 1, 2, models.FollowStatusFollowing},
		{"requested", 1, 3, models.FollowStatusRequested},
		{"none", 2, 3, models.FollowStatusNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Status(ctx, tc.viewerID, tc.targetID)
			if err != nil {
				t.Fatalf("status: %v", err)
			}
			if got != tc.want {
				t.Fatalf("status(%d, %d) = %q, want %q", tc.viewerID, tc.targetID, got, tc.want)
			}
		})
	}
}

func TestFollowServiceCanUsersMessageMutualOnly(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	svc := NewFollowService(repo, publicUserRepo())

	ok, err := svc.CanUsersMessage(ctx, 1, 2)
	if err != nil || ok {
		t.Fatalf("expected no messaging before any edges, got ok=%v err=%v", ok, err)
	}

	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow 1->2: %v", err)
	}
	ok, err = svc.CanUsersMessage(ctx, 1, 2)
	if err != nil || ok {
		t.Fatalf("expected no messaging on one-way follow, got ok=%v err=%v", ok, err)
	}

	if err := svc.Follow(ctx, 2, 1); err != nil {
		t.Fatalf("follow 2->1: %v", err)
	}
	ok, err = svc.CanUsersMessage(ctx, 1, 2)
	if err != nil || !ok {
		t.Fatalf("expected messaging on mutual follow, got ok=%v err=%v", ok, err)
	}

	// Order of arguments does not matter.
	ok, err = svc.CanUsersMessage(ctx, 2, 1)
	if err != nil || !ok {
		t.Fatalf("expected messaging to be symmetric, got ok=%v err=%v", ok, err)
	}

	// Either side unfollowing breaks eligibility.
	if err := svc.Unfollow(ctx, 2, 1); err != nil {
		t.Fatalf("unfollow 2->1: %v", err)
	}
	ok, err = svc.CanUsersMessage(ctx, 1, 2)
	if err != nil || ok {
		t.Fatalf("expected messaging revoked after unfollow, got ok=%v err=%v", ok, err)
	}
}

func TestFollowServiceCanUsersMessageSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	ok, err := svc.CanUsersMessage(context.Background(), 4, 4)
	if err != nil || ok {
		t.Fatalf("expected self-messaging to be false, got ok=%v err=%v", ok, err)
	}
}

func TestFollowServiceFollowClearsStaleRequest(t *testing.T) {
	ctx := context.Background()
	repo := newMemFollowRepo()
	repo.requests[[2]uint{1, 2}] = true

	svc := NewFollowService(repo, publicUserRepo())
	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}

	pending, err := svc.GetPendingRequests(ctx, 2)
	if err != nil || len(pending) != 0 {
		t.Fatalf("expected stale request cleared by follow, got %+v err=%v", pending, err)
	}
	following, err := svc.IsFollowing(ctx, 1, 2)
	if err != nil || !following {
		t.Fatalf("expected edge after follow, got following=%v err=%v", following, err)
	}
}
