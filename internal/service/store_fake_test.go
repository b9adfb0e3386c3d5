package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/repository"
)

// fakeStore is an in-memory repository.Store used by the service tests. It
// mirrors the contract of the postgres store: copies on read, pgx.ErrNoRows
// for misses, SQLSTATE 23505 on duplicate ticket numbers and a serialized
// per-month sequence counter.
type fakeStore struct {
	mu sync.Mutex

	now func() time.Time

	tickets     map[int64]*domain.Ticket
	history     []domain.TicketHistory
	comments    map[int64]*domain.Comment
	attachments map[int64]*domain.Attachment
	users       map[int64]*domain.User
	categories  map[int64]*domain.Category
	sequences   map[string]int

	nextID int64

	// forced failures for rollback-path tests
	historyErr error
}

func newFakeStore(clock func() time.Time) *fakeStore {
	if clock == nil {
		clock = time.Now
	}
	return &fakeStore{
		now:         clock,
		tickets:     make(map[int64]*domain.Ticket),
		comments:    make(map[int64]*domain.Comment),
		attachments: make(map[int64]*domain.Attachment),
		users:       make(map[int64]*domain.User),
		categories:  make(map[int64]*domain.Category),
		sequences:   make(map[string]int),
	}
}

func (f *fakeStore) Tickets() repository.TicketRepository        { return &fakeTicketRepo{f} }
func (f *fakeStore) History() repository.TicketHistoryRepository { return &fakeHistoryRepo{f} }
func (f *fakeStore) Comments() repository.CommentRepository      { return &fakeCommentRepo{f} }
func (f *fakeStore) Attachments() repository.AttachmentRepository {
	return &fakeAttachmentRepo{f}
}
func (f *fakeStore) Users() repository.UserRepository          { return &fakeUserRepo{f} }
func (f *fakeStore) Categories() repository.CategoryRepository { return &fakeCategoryRepo{f} }
func (f *fakeStore) Sequences() repository.SequenceRepository  { return &fakeSequenceRepo{f} }

// WithinTx mirrors transactional rollback: writes made by fn are discarded
// when fn returns an error. Restore assumes no concurrent writer commits
// while a failing transaction is in flight, which holds for these tests.
func (f *fakeStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	f.mu.Lock()
	snap := f.snapshot()
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.restore(snap)
		f.mu.Unlock()
		return err
	}
	return nil
}

type storeSnapshot struct {
	tickets     map[int64]*domain.Ticket
	history     []domain.TicketHistory
	comments    map[int64]*domain.Comment
	attachments map[int64]*domain.Attachment
	users       map[int64]*domain.User
	categories  map[int64]*domain.Category
	sequences   map[string]int
	nextID      int64
}

func (f *fakeStore) snapshot() storeSnapshot {
	sequences := make(map[string]int, len(f.sequences))
	for key, val := range f.sequences {
		sequences[key] = val
	}
	return storeSnapshot{
		tickets:     cloneMap(f.tickets),
		history:     append([]domain.TicketHistory(nil), f.history...),
		comments:    cloneMap(f.comments),
		attachments: cloneMap(f.attachments),
		users:       cloneMap(f.users),
		categories:  cloneMap(f.categories),
		sequences:   sequences,
		nextID:      f.nextID,
	}
}

func (f *fakeStore) restore(snap storeSnapshot) {
	f.tickets = snap.tickets
	f.history = snap.history
	f.comments = snap.comments
	f.attachments = snap.attachments
	f.users = snap.users
	f.categories = snap.categories
	f.sequences = snap.sequences
	f.nextID = snap.nextID
}

func cloneMap[T any](src map[int64]*T) map[int64]*T {
	dst := make(map[int64]*T, len(src))
	for id, val := range src {
		stored := *val
		dst[id] = &stored
	}
	return dst
}

func (f *fakeStore) allocID() int64 {
	f.nextID++
	return f.nextID
}

// seed helpers

func (f *fakeStore) seedUser(user domain.User) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		user.ID = f.allocID()
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = f.now()
	}
	f.users[user.ID] = &user
	return &user
}

func (f *fakeStore) seedCategory(category domain.Category) *domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category.ID == 0 {
		category.ID = f.allocID()
	} else if category.ID > f.nextID {
		f.nextID = category.ID
	}
	f.categories[category.ID] = &category
	return &category
}

func (f *fakeStore) historyFor(ticketID int64) []domain.TicketHistory {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.TicketHistory, 0)
	for _, entry := range f.history {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out
}

// ticket repository

type fakeTicketRepo struct{ f *fakeStore }

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.tickets {
		if existing.TicketNumber == ticket.TicketNumber {
			return &pgconn.PgError{Code: "23505", ConstraintName: "tickets_number_unique"}
		}
	}
	ticket.ID = r.f.allocID()
	ticket.CreatedAt = r.f.now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.f.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	existing, ok := r.f.tickets[ticket.ID]
	if !ok || existing.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = r.f.now()
	stored := *ticket
	r.f.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	ticket, ok := r.f.tickets[id]
	if !ok || ticket.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copy := *ticket
	return &copy, nil
}

func (r *fakeTicketRepo) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, ticket := range r.f.tickets {
		if ticket.TicketNumber == number && ticket.DeletedAt == nil {
			copy := *ticket
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]domain.Ticket, 0)
	for _, ticket := range r.f.tickets {
		if ticket.DeletedAt != nil {
			continue
		}
		if filter.CreatedBy != nil && ticket.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.AssignedTo != nil && !ticket.IsAssignedTo(*filter.AssignedTo) {
			continue
		}
		if filter.Unassigned && ticket.AssignedTo != nil {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	ticket, ok := r.f.tickets[id]
	if !ok || ticket.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	ticket.DeletedAt = &at
	ticket.DeletedBy = &deletedBy
	return nil
}

func containsStatus(statuses []domain.Status, status domain.Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// history repository

type fakeHistoryRepo struct{ f *fakeStore }

func (r *fakeHistoryRepo) Create(ctx context.Context, history *domain.TicketHistory) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.historyErr != nil {
		return r.f.historyErr
	}
	history.ID = r.f.allocID()
	history.CreatedAt = r.f.now()
	r.f.history = append(r.f.history, *history)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(ctx context.Context, ticketID int64, limit, offset int) ([]domain.TicketHistory, error) {
	entries := r.f.historyFor(ticketID)
	if offset > len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// comment repository

type fakeCommentRepo struct{ f *fakeStore }

func (r *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	comment.ID = r.f.allocID()
	comment.CreatedAt = r.f.now()
	stored := *comment
	r.f.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	comment, ok := r.f.comments[id]
	if !ok || comment.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copy := *comment
	return &copy, nil
}

func (r *fakeCommentRepo) ListByTicket(ctx context.Context, ticketID int64, includeInternal bool) ([]domain.Comment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]domain.Comment, 0)
	for _, comment := range r.f.comments {
		if comment.TicketID != ticketID || comment.DeletedAt != nil {
			continue
		}
		if comment.IsInternal && !includeInternal {
			continue
		}
		out = append(out, *comment)
	}
	return out, nil
}

func (r *fakeCommentRepo) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	comment, ok := r.f.comments[id]
	if !ok || comment.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	comment.DeletedAt = &at
	comment.DeletedBy = &deletedBy
	return nil
}

func (r *fakeCommentRepo) SoftDeleteByTicket(ctx context.Context, ticketID, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, comment := range r.f.comments {
		if comment.TicketID == ticketID && comment.DeletedAt == nil {
			comment.DeletedAt = &at
			comment.DeletedBy = &deletedBy
		}
	}
	return nil
}

// attachment repository

type fakeAttachmentRepo struct{ f *fakeStore }

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *domain.Attachment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	attachment.ID = r.f.allocID()
	attachment.CreatedAt = r.f.now()
	stored := *attachment
	r.f.attachments[attachment.ID] = &stored
	return nil
}

func (r *fakeAttachmentRepo) GetByID(ctx context.Context, id int64) (*domain.Attachment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	attachment, ok := r.f.attachments[id]
	if !ok || attachment.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copy := *attachment
	return &copy, nil
}

func (r *fakeAttachmentRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Attachment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]domain.Attachment, 0)
	for _, attachment := range r.f.attachments {
		if attachment.TicketID == ticketID && attachment.DeletedAt == nil {
			out = append(out, *attachment)
		}
	}
	return out, nil
}

func (r *fakeAttachmentRepo) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	attachment, ok := r.f.attachments[id]
	if !ok || attachment.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	attachment.DeletedAt = &at
	attachment.DeletedBy = &deletedBy
	return nil
}

func (r *fakeAttachmentRepo) SoftDeleteByTicket(ctx context.Context, ticketID, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, attachment := range r.f.attachments {
		if attachment.TicketID == ticketID && attachment.DeletedAt == nil {
			attachment.DeletedAt = &at
			attachment.DeletedBy = &deletedBy
		}
	}
	return nil
}

// user repository

type fakeUserRepo struct{ f *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	user.ID = r.f.allocID()
	user.CreatedAt = r.f.now()
	stored := *user
	r.f.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	user, ok := r.f.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copy := *user
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, user := range r.f.users {
		if user.Email == email && user.DeletedAt == nil {
			copy := *user
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]domain.User, 0)
	for _, user := range r.f.users {
		if user.Role == role && user.Active && user.DeletedAt == nil {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	user, ok := r.f.users[id]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	user.DeletedAt = &at
	user.DeletedBy = &deletedBy
	return nil
}

// category repository

type fakeCategoryRepo struct{ f *fakeStore }

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	category.ID = r.f.allocID()
	stored := *category
	r.f.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *category
	r.f.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	category, ok := r.f.categories[id]
	if !ok || category.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copy := *category
	return &copy, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]domain.Category, 0)
	for _, category := range r.f.categories {
		if category.DeletedAt == nil {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	category, ok := r.f.categories[id]
	if !ok || category.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	category.DeletedAt = &at
	category.DeletedBy = &deletedBy
	return nil
}

// sequence repository

type fakeSequenceRepo struct{ f *fakeStore }

func (r *fakeSequenceRepo) Next(ctx context.Context, year int, month time.Month) (int, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	key := fmt.Sprintf("%04d-%02d", year, int(month))
	r.f.sequences[key]++
	return r.f.sequences[key], nil
}
