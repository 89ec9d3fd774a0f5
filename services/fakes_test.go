package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/m-kaif07/esport-tournament-website/models"
	"github.com/m-kaif07/esport-tournament-website/repositories"
)

// memStore is a single in-memory state shared by all fake repositories, so
// cross-repository effects (cascades, transactional rollback) behave like
// one database.
type memStore struct {
	mu sync.Mutex

	tournaments   map[int]*models.Tournament
	slots         map[int]map[int]*models.Slot
	registrations map[int]*models.Registration
	users         map[int]*models.User
	earnings      map[int]*models.Earning

	nextTournamentID   int
	nextRegistrationID int
	nextUserID         int
	nextEarningID      int
}

func newMemStore() *memStore {
	return &memStore{
		tournaments:   make(map[int]*models.Tournament),
		slots:         make(map[int]map[int]*models.Slot),
		registrations: make(map[int]*models.Registration),
		users:         make(map[int]*models.User),
		earnings:      make(map[int]*models.Earning),
	}
}

type memSnapshot struct {
	tournaments   map[int]*models.Tournament
	slots         map[int]map[int]*models.Slot
	registrations map[int]*models.Registration
	users         map[int]*models.User
	earnings      map[int]*models.Earning
}

func (s *memStore) snapshot() *memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sn := &memSnapshot{
		tournaments:   make(map[int]*models.Tournament, len(s.tournaments)),
		slots:         make(map[int]map[int]*models.Slot, len(s.slots)),
		registrations: make(map[int]*models.Registration, len(s.registrations)),
		users:         make(map[int]*models.User, len(s.users)),
		earnings:      make(map[int]*models.Earning, len(s.earnings)),
	}
	for id, t := range s.tournaments {
		copied := *t
		sn.tournaments[id] = &copied
	}
	for tid, bySlot := range s.slots {
		copies := make(map[int]*models.Slot, len(bySlot))
		for n, slot := range bySlot {
			copied := *slot
			copies[n] = &copied
		}
		sn.slots[tid] = copies
	}
	for id, reg := range s.registrations {
		copied := *reg
		sn.registrations[id] = &copied
	}
	for id, u := range s.users {
		copied := *u
		sn.users[id] = &copied
	}
	for id, e := range s.earnings {
		copied := *e
		sn.earnings[id] = &copied
	}
	return sn
}

func (s *memStore) restore(sn *memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments = sn.tournaments
	s.slots = sn.slots
	s.registrations = sn.registrations
	s.users = sn.users
	s.earnings = sn.earnings
}

// fakeTxRunner serializes transactions like row locks would, and restores a
// pre-transaction snapshot when the function fails.
type fakeTxRunner struct {
	store *memStore
	txMu  sync.Mutex
}

func (r *fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	sn := r.store.snapshot()
	if err := fn(nil); err != nil {
		r.store.restore(sn)
		return err
	}
	return nil
}

type fakeTournamentRepo struct{ s *memStore }

func (r *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTournamentID++
	t.ID = r.s.nextTournamentID
	t.CreatedAt = time.Now()
	copied := *t
	r.s.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, game *string) ([]*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		if game != nil && t.Game != *game {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, exec repositories.SQLExecutor, id int, params repositories.TournamentUpdateParams) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	if params.Title != nil {
		t.Title = *params.Title
	}
	if params.Game != nil {
		t.Game = *params.Game
	}
	if params.Map != nil {
		t.Map = params.Map
	}
	if params.Mode != nil {
		t.Mode = *params.Mode
	}
	if params.TotalSlots != nil {
		t.TotalSlots = *params.TotalSlots
	}
	if params.Fee != nil {
		t.Fee = *params.Fee
	}
	if params.PrizePool != nil {
		t.PrizePool = *params.PrizePool
	}
	if params.Prize1 != nil {
		t.Prize1 = *params.Prize1
	}
	if params.Prize2 != nil {
		t.Prize2 = *params.Prize2
	}
	if params.Prize3 != nil {
		t.Prize3 = *params.Prize3
	}
	if params.RoomID != nil {
		t.RoomID = params.RoomID
	}
	if params.RoomPassword != nil {
		t.RoomPassword = params.RoomPassword
	}
	if params.BannerKey != nil {
		t.BannerKey = params.BannerKey
	}
	if params.QRKey != nil {
		t.QRKey = params.QRKey
	}
	if params.StartTime != nil {
		t.StartTime = *params.StartTime
	}
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.s.tournaments, id)
	delete(r.s.slots, id)
	for regID, reg := range r.s.registrations {
		if reg.TournamentID == id {
			delete(r.s.registrations, regID)
		}
	}
	return nil
}

func (r *fakeTournamentRepo) SetWinner(ctx context.Context, exec repositories.SQLExecutor, tournamentID, rank, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[tournamentID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	switch rank {
	case 1:
		t.Winner1ID = &userID
	case 2:
		t.Winner2ID = &userID
	case 3:
		t.Winner3ID = &userID
	}
	return nil
}

func (r *fakeTournamentRepo) ListWinnerNames(ctx context.Context, tournamentIDs []int) (map[int]repositories.WinnerNames, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[int]repositories.WinnerNames)
	name := func(id *int) *string {
		if id == nil {
			return nil
		}
		if u, ok := r.s.users[*id]; ok {
			n := u.Username
			return &n
		}
		return nil
	}
	for _, id := range tournamentIDs {
		t, ok := r.s.tournaments[id]
		if !ok {
			continue
		}
		out[id] = repositories.WinnerNames{
			Winner1: name(t.Winner1ID),
			Winner2: name(t.Winner2ID),
			Winner3: name(t.Winner3ID),
		}
	}
	return out, nil
}

type fakeSlotRepo struct{ s *memStore }

func (r *fakeSlotRepo) CreateRange(ctx context.Context, exec repositories.SQLExecutor, tournamentID, from, to int, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.slots[tournamentID]; !ok {
		r.s.slots[tournamentID] = make(map[int]*models.Slot)
	}
	for n := from; n <= to; n++ {
		r.s.slots[tournamentID][n] = &models.Slot{
			TournamentID: tournamentID,
			SlotNumber:   n,
			Status:       models.SlotEmpty,
			UpdatedAt:    now,
		}
	}
	return nil
}

func (r *fakeSlotRepo) Get(ctx context.Context, tournamentID, slotNumber int) (*models.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[tournamentID][slotNumber]
	if !ok {
		return nil, repositories.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) FindFirstEmpty(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	numbers := make([]int, 0, len(r.s.slots[tournamentID]))
	for n, slot := range r.s.slots[tournamentID] {
		if slot.Status == models.SlotEmpty {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return 0, repositories.ErrNoEmptySlot
	}
	sort.Ints(numbers)
	return numbers[0], nil
}

func (r *fakeSlotRepo) Reserve(ctx context.Context, exec repositories.SQLExecutor, tournamentID, slotNumber int, occupants [4]*string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[tournamentID][slotNumber]
	if !ok || slot.Status != models.SlotEmpty {
		return repositories.ErrSlotTaken
	}
	slot.Status = models.SlotReserved
	slot.P1, slot.P2, slot.P3, slot.P4 = occupants[0], occupants[1], occupants[2], occupants[3]
	slot.UpdatedAt = now
	return nil
}

func (r *fakeSlotRepo) Confirm(ctx context.Context, exec repositories.SQLExecutor, tournamentID, slotNumber int, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[tournamentID][slotNumber]
	if !ok {
		return repositories.ErrSlotNotFound
	}
	slot.Status = models.SlotConfirmed
	slot.UpdatedAt = now
	return nil
}

func (r *fakeSlotRepo) Release(ctx context.Context, exec repositories.SQLExecutor, tournamentID, slotNumber int, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[tournamentID][slotNumber]
	if !ok {
		return repositories.ErrSlotNotFound
	}
	slot.Status = models.SlotEmpty
	slot.P1, slot.P2, slot.P3, slot.P4 = nil, nil, nil, nil
	slot.UpdatedAt = now
	return nil
}

func (r *fakeSlotRepo) Overwrite(ctx context.Context, exec repositories.SQLExecutor, tournamentID, slotNumber int, status models.SlotStatus, occupants [4]*string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[tournamentID][slotNumber]
	if !ok {
		return repositories.ErrSlotNotFound
	}
	slot.Status = status
	slot.P1, slot.P2, slot.P3, slot.P4 = occupants[0], occupants[1], occupants[2], occupants[3]
	slot.UpdatedAt = now
	return nil
}

func (r *fakeSlotRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Slot, 0, len(r.s.slots[tournamentID]))
	for _, slot := range r.s.slots[tournamentID] {
		copied := *slot
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotNumber < out[j].SlotNumber })
	return out, nil
}

func (r *fakeSlotRepo) CountFilled(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, slot := range r.s.slots[tournamentID] {
		if slot.Status != models.SlotEmpty {
			count++
		}
	}
	return count, nil
}

func (r *fakeSlotRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.slots[tournamentID]), nil
}

func (r *fakeSlotRepo) DeleteAbove(ctx context.Context, exec repositories.SQLExecutor, tournamentID, keep int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for n := range r.s.slots[tournamentID] {
		if n > keep {
			delete(r.s.slots[tournamentID], n)
		}
	}
	return nil
}

type fakeRegistrationRepo struct{ s *memStore }

func (r *fakeRegistrationRepo) Create(ctx context.Context, exec repositories.SQLExecutor, reg *models.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.registrations {
		if existing.UserID == reg.UserID && existing.TournamentID == reg.TournamentID {
			return repositories.ErrRegistrationConflict
		}
		if reg.UTR != nil && existing.UTR != nil && *existing.UTR == *reg.UTR {
			return repositories.ErrPaymentRefConflict
		}
	}
	r.s.nextRegistrationID++
	reg.ID = r.s.nextRegistrationID
	reg.CreatedAt = time.Now()
	copied := *reg
	r.s.registrations[reg.ID] = &copied
	return nil
}

func (r *fakeRegistrationRepo) SetSlotNumber(ctx context.Context, exec repositories.SQLExecutor, id, slotNumber int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return repositories.ErrRegistrationNotFound
	}
	n := slotNumber
	reg.SlotNumber = &n
	return nil
}

func (r *fakeRegistrationRepo) MarkPaid(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return repositories.ErrRegistrationNotFound
	}
	reg.Paid = true
	return nil
}

func (r *fakeRegistrationRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.registrations[id]; !ok {
		return repositories.ErrRegistrationNotFound
	}
	delete(r.s.registrations, id)
	return nil
}

func (r *fakeRegistrationRepo) FindByID(ctx context.Context, id int) (*models.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, repositories.ErrRegistrationNotFound
	}
	copied := *reg
	return &copied, nil
}

func (r *fakeRegistrationRepo) FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reg := range r.s.registrations {
		if reg.UserID == userID && reg.TournamentID == tournamentID {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) SumTeamSizes(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := 0
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID {
			sum += reg.TeamSize
		}
	}
	return sum, nil
}

func (r *fakeRegistrationRepo) SumTeamSizesByTournament(ctx context.Context) (map[int]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[int]int)
	for _, reg := range r.s.registrations {
		out[reg.TournamentID] += reg.TeamSize
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Registration, 0)
	for _, reg := range r.s.registrations {
		if reg.TournamentID != tournamentID {
			continue
		}
		copied := *reg
		if u, ok := r.s.users[reg.UserID]; ok {
			userCopy := *u
			copied.User = &userCopy
		}
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRegistrationRepo) ListByUser(ctx context.Context, userID int) ([]*models.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Registration, 0)
	for _, reg := range r.s.registrations {
		if reg.UserID != userID {
			continue
		}
		copied := *reg
		if t, ok := r.s.tournaments[reg.TournamentID]; ok {
			tCopy := *t
			copied.Tournament = &tCopy
		}
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	u.CreatedAt = time.Now()
	copied := *u
	r.s.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) SetFCMToken(ctx context.Context, userID int, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.FCMToken = &token
	return nil
}

func (r *fakeUserRepo) ListFCMTokens(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tokens := make([]string, 0)
	for _, u := range r.s.users {
		if u.FCMToken != nil && *u.FCMToken != "" {
			tokens = append(tokens, *u.FCMToken)
		}
	}
	return tokens, nil
}

type fakeEarningRepo struct{ s *memStore }

func (r *fakeEarningRepo) Create(ctx context.Context, exec repositories.SQLExecutor, e *models.Earning) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEarningID++
	e.ID = r.s.nextEarningID
	e.CreatedAt = time.Now()
	copied := *e
	r.s.earnings[e.ID] = &copied
	return nil
}

func (r *fakeEarningRepo) ExistsByUserAndDescription(ctx context.Context, exec repositories.SQLExecutor, userID int, description string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.earnings {
		if e.UserID == userID && e.Description == description {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEarningRepo) ListByUser(ctx context.Context, userID int) ([]*models.Earning, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Earning, 0)
	for _, e := range r.s.earnings {
		if e.UserID == userID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type publishedEvent struct {
	Room    string
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	mu         sync.Mutex
	events     []publishedEvent
	broadcasts []publishedEvent
}

func (p *fakePublisher) Publish(room, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Room: room, Type: eventType, Payload: payload})
}

func (p *fakePublisher) BroadcastAll(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.broadcasts = append(p.broadcasts, publishedEvent{Type: eventType, Payload: payload})
}

func (p *fakePublisher) eventsOfType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, 0)
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type sentPush struct {
	Tokens []string
	Title  string
	Body   string
}

type fakePushSender struct {
	mu    sync.Mutex
	sends []sentPush
}

func (p *fakePushSender) Send(ctx context.Context, tokens []string, title, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sends = append(p.sends, sentPush{Tokens: tokens, Title: title, Body: body})
}

// testEnv wires the services against the in-memory fakes.
type testEnv struct {
	store       *memStore
	txr         *fakeTxRunner
	tournaments *fakeTournamentRepo
	slots       *fakeSlotRepo
	regs        *fakeRegistrationRepo
	users       *fakeUserRepo
	earnings    *fakeEarningRepo
	hub         *fakePublisher
	push        *fakePushSender

	regSvc  *RegistrationService
	tourSvc *TournamentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	env := &testEnv{
		store:       store,
		txr:         &fakeTxRunner{store: store},
		tournaments: &fakeTournamentRepo{s: store},
		slots:       &fakeSlotRepo{s: store},
		regs:        &fakeRegistrationRepo{s: store},
		users:       &fakeUserRepo{s: store},
		earnings:    &fakeEarningRepo{s: store},
		hub:         &fakePublisher{},
		push:        &fakePushSender{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.regSvc = NewRegistrationService(env.txr, env.tournaments, env.slots, env.regs, env.users, env.hub, env.push, logger)
	env.tourSvc = NewTournamentService(env.txr, env.tournaments, env.slots, env.regs, env.users, env.earnings, nil, env.hub, env.push, logger)
	return env
}

func (env *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	if err := env.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (env *testEnv) seedTournament(t *testing.T, mode models.GameMode, fee, totalSlots int, start time.Time) *models.Tournament {
	t.Helper()
	tour := &models.Tournament{
		Title:      "Test Cup",
		Game:       models.GameFreeFire,
		Mode:       mode,
		TotalSlots: totalSlots,
		Fee:        fee,
		Prize1:     500,
		Prize2:     300,
		Prize3:     200,
		StartTime:  start,
	}
	ctx := context.Background()
	if err := env.tournaments.Create(ctx, nil, tour); err != nil {
		t.Fatalf("seed tournament: %v", err)
	}
	if err := env.slots.CreateRange(ctx, nil, tour.ID, 1, totalSlots, time.Now()); err != nil {
		t.Fatalf("seed slots: %v", err)
	}
	return tour
}

func soloRoster(name string) []models.Participant {
	return []models.Participant{{Name: name, UID: "123456"}}
}
