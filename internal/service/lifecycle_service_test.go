package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/repository"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

type lifecycleEnv struct {
	store    *fakeStore
	svc      *LifecycleService
	clock    *testClock
	admin    *domain.User
	tech     *domain.User
	tech2    *domain.User
	client   *domain.User
	category *domain.Category
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
	t.Helper()
	clock := &testClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	store := newFakeStore(clock.Now)
	svc := NewLifecycleService(LifecycleDependencies{
		Store: store,
		Clock: clock.Now,
	})
	return &lifecycleEnv{
		store:    store,
		svc:      svc,
		clock:    clock,
		admin:    store.seedUser(domain.User{Name: "Ana", Email: "ana@soporte.test", Role: domain.RoleAdmin, Active: true}),
		tech:     store.seedUser(domain.User{Name: "Luis", Email: "luis@soporte.test", Role: domain.RoleTechnician, Active: true}),
		tech2:    store.seedUser(domain.User{Name: "Marta", Email: "marta@soporte.test", Role: domain.RoleTechnician, Active: true}),
		client:   store.seedUser(domain.User{Name: "Pedro", Email: "pedro@cliente.test", Role: domain.RoleClient, Active: true}),
		category: store.seedCategory(domain.Category{Name: "Hardware", Active: true}),
	}
}

func (e *lifecycleEnv) createTicket(t *testing.T, priority domain.Priority) *domain.Ticket {
	t.Helper()
	ticket, err := e.svc.Create(context.Background(), e.client, CreateTicketInput{
		Title:       "Impresora sin red",
		Description: "La impresora de la planta 2 no responde",
		CategoryID:  e.category.ID,
		Priority:    priority,
	})
	require.NoError(t, err)
	return ticket
}

func (e *lifecycleEnv) ticketInProgress(t *testing.T, priority domain.Priority) *domain.Ticket {
	t.Helper()
	ticket := e.createTicket(t, priority)
	_, err := e.svc.Assign(context.Background(), e.admin, ticket.ID, e.tech.ID)
	require.NoError(t, err)
	ticket, err = e.svc.Accept(context.Background(), e.tech, ticket.ID)
	require.NoError(t, err)
	return ticket
}

func TestCreateAllocatesSequentialNumbers(t *testing.T) {
	env := newLifecycleEnv(t)

	first := env.createTicket(t, domain.PriorityMedia)
	second := env.createTicket(t, domain.PriorityMedia)

	assert.Equal(t, "ID-2025-03-001", first.TicketNumber)
	assert.Equal(t, "ID-2025-03-002", second.TicketNumber)
	assert.Equal(t, domain.StatusNuevo, first.Status)
	assert.Equal(t, env.client.ID, first.CreatedBy)

	history := env.store.historyFor(first.ID)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionCreated, history[0].Action)
}

func TestCreateSequenceResetsPerMonth(t *testing.T) {
	env := newLifecycleEnv(t)

	env.createTicket(t, domain.PriorityMedia)
	env.clock.Set(time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC))
	next := env.createTicket(t, domain.PriorityMedia)

	assert.Equal(t, "ID-2025-04-001", next.TicketNumber)
}

func TestCreateRetriesOnNumberCollision(t *testing.T) {
	env := newLifecycleEnv(t)

	// occupy the number the first allocation would produce
	squatter := &domain.Ticket{
		TicketNumber: "ID-2025-03-001",
		Title:        "ocupado",
		Description:  "ocupado",
		CategoryID:   env.category.ID,
		Priority:     domain.PriorityMedia,
		Status:       domain.StatusNuevo,
		CreatedBy:    env.client.ID,
	}
	require.NoError(t, env.store.Tickets().Create(context.Background(), squatter))

	ticket := env.createTicket(t, domain.PriorityMedia)
	assert.Equal(t, "ID-2025-03-002", ticket.TicketNumber)

	// the counter keeps advancing past the collision
	next := env.createTicket(t, domain.PriorityMedia)
	assert.Equal(t, "ID-2025-03-003", next.TicketNumber)
}

func TestFailedCreateRollsBackTicketButKeepsCounter(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	env.store.historyErr = fmt.Errorf("history insert failed")
	_, err := env.svc.Create(ctx, env.client, CreateTicketInput{
		Title:       "Fallo a medias",
		Description: "no debe quedar rastro",
		CategoryID:  env.category.ID,
		Priority:    domain.PriorityMedia,
	})
	require.Error(t, err)

	tickets, err := env.store.Tickets().ListWithFilter(ctx, repository.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, tickets)

	// the consumed number stays burned, the next create skips past it
	env.store.historyErr = nil
	ticket := env.createTicket(t, domain.PriorityMedia)
	assert.Equal(t, "ID-2025-03-002", ticket.TicketNumber)
}

func TestCreateValidation(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.client, CreateTicketInput{
		Title:      "  ",
		CategoryID: env.category.ID,
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = env.svc.Create(ctx, env.client, CreateTicketInput{
		Title:       "Algo",
		Description: "Algo",
		CategoryID:  9999,
	})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	inactive := env.store.seedCategory(domain.Category{Name: "Obsoleta", Active: false})
	_, err = env.svc.Create(ctx, env.client, CreateTicketInput{
		Title:       "Algo",
		Description: "Algo",
		CategoryID:  inactive.ID,
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestConcurrentCreatesGetUniqueNumbers(t *testing.T) {
	env := newLifecycleEnv(t)
	const workers = 20

	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ticket, err := env.svc.Create(context.Background(), env.client, CreateTicketInput{
				Title:       fmt.Sprintf("Incidente %d", n),
				Description: "carga concurrente",
				CategoryID:  env.category.ID,
				Priority:    domain.PriorityBaja,
			})
			if err == nil {
				numbers <- ticket.TicketNumber
			}
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]struct{})
	for number := range numbers {
		_, dup := seen[number]
		assert.False(t, dup, "duplicate ticket number %s", number)
		seen[number] = struct{}{}
	}
	assert.Len(t, seen, workers)
}

func TestAssignRules(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityAlta)

	assigned, err := env.svc.Assign(ctx, env.admin, ticket.ID, env.tech.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAsignado, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, env.tech.ID, *assigned.AssignedTo)
	require.NotNil(t, assigned.AssignedAt)
	firstAssignedAt := *assigned.AssignedAt

	// technicians may only take tickets themselves
	_, err = env.svc.Assign(ctx, env.tech2, ticket.ID, env.tech.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	// clients never assign
	_, err = env.svc.Assign(ctx, env.client, ticket.ID, env.tech.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	// reassignment keeps the original AssignedAt
	env.clock.Set(env.clock.Now().Add(2 * time.Hour))
	reassigned, err := env.svc.Assign(ctx, env.admin, ticket.ID, env.tech2.ID)
	require.NoError(t, err)
	assert.Equal(t, env.tech2.ID, *reassigned.AssignedTo)
	assert.Equal(t, firstAssignedAt, *reassigned.AssignedAt)

	history := env.store.historyFor(ticket.ID)
	var reassignEntries int
	for _, entry := range history {
		if entry.Action == domain.ActionReassigned {
			reassignEntries++
		}
	}
	assert.Equal(t, 1, reassignEntries)
}

func TestAssignRejectsClosedTicket(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.ticketInProgress(t, domain.PriorityMedia)
	_, err := env.svc.Resolve(ctx, env.tech, ticket.ID, "reiniciado el servicio")
	require.NoError(t, err)
	_, err = env.svc.Close(ctx, env.client, ticket.ID)
	require.NoError(t, err)

	_, err = env.svc.Assign(ctx, env.admin, ticket.ID, env.tech2.ID)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
}

func TestAcceptOnlyByAssignee(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)
	_, err := env.svc.Accept(ctx, env.tech, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = env.svc.Assign(ctx, env.admin, ticket.ID, env.tech.ID)
	require.NoError(t, err)

	_, err = env.svc.Accept(ctx, env.tech2, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	accepted, err := env.svc.Accept(ctx, env.tech, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnProceso, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)

	// accepting twice is an invalid transition
	_, err = env.svc.Accept(ctx, env.tech, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
}

func TestRejectReturnsTicketToQueue(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)
	_, err := env.svc.Assign(ctx, env.admin, ticket.ID, env.tech.ID)
	require.NoError(t, err)

	_, err = env.svc.Reject(ctx, env.tech, ticket.ID, "   ")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	rejected, err := env.svc.Reject(ctx, env.tech, ticket.ID, "fuera de mi especialidad")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNuevo, rejected.Status)
	assert.Nil(t, rejected.AssignedTo)
	assert.Nil(t, rejected.AssignedBy)

	history := env.store.historyFor(ticket.ID)
	last := history[len(history)-1]
	assert.Contains(t, last.NewValue, "motivo: fuera de mi especialidad")
}

func TestResolveComputesMetricsOnce(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	env.clock.Set(time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC))
	ticket := env.ticketInProgress(t, domain.PriorityCritica)

	env.clock.Set(time.Date(2025, time.January, 15, 13, 0, 0, 0, time.UTC))
	resolved, err := env.svc.Resolve(ctx, env.tech, ticket.ID, "se reemplazó la fuente")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusResuelto, resolved.Status)
	require.NotNil(t, resolved.ResolutionTimeHours)
	assert.InDelta(t, 5.0, *resolved.ResolutionTimeHours, 0.001)
	assert.True(t, resolved.SLABreach, "5h over a 4h target must flag a breach")

	// the solution lands in the thread
	comments, err := env.store.Comments().ListByTicket(ctx, ticket.ID, true)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "se reemplazó la fuente", comments[0].Body)

	// breach leaves its own audit row
	var breachRows int
	for _, entry := range env.store.historyFor(ticket.ID) {
		if entry.Action == domain.ActionSLABreach {
			breachRows++
		}
	}
	assert.Equal(t, 1, breachRows)

	// resolving an already resolved ticket is rejected, metrics untouched
	env.clock.Set(time.Date(2025, time.January, 16, 9, 0, 0, 0, time.UTC))
	_, err = env.svc.Resolve(ctx, env.tech, ticket.ID, "otra vez")
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))

	current, err := env.store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, *current.ResolutionTimeHours, 0.001)
}

func TestResolveWithinTargetDoesNotBreach(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	env.clock.Set(time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC))
	ticket := env.ticketInProgress(t, domain.PriorityBaja)

	env.clock.Set(time.Date(2025, time.January, 15, 13, 0, 0, 0, time.UTC))
	resolved, err := env.svc.Resolve(ctx, env.tech, ticket.ID, "reinstalado el driver")
	require.NoError(t, err)
	assert.False(t, resolved.SLABreach)
}

func TestResolveRequiresSolution(t *testing.T) {
	env := newLifecycleEnv(t)
	ticket := env.ticketInProgress(t, domain.PriorityMedia)

	_, err := env.svc.Resolve(context.Background(), env.tech, ticket.ID, "")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestResolveOnlyByAssigneeOrAdmin(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()
	ticket := env.ticketInProgress(t, domain.PriorityMedia)

	_, err := env.svc.Resolve(ctx, env.tech2, ticket.ID, "intento ajeno")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = env.svc.Resolve(ctx, env.admin, ticket.ID, "resuelto por el admin")
	require.NoError(t, err)
}

func TestCloseOnlyFromResuelto(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.ticketInProgress(t, domain.PriorityMedia)
	_, err := env.svc.Close(ctx, env.client, ticket.ID)
	require.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
	assert.Equal(t, 422, apperrors.ToDomainError(err).HTTPStatus)

	_, err = env.svc.Resolve(ctx, env.tech, ticket.ID, "listo")
	require.NoError(t, err)

	closed, err := env.svc.Close(ctx, env.client, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCerrado, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// closing twice is rejected
	_, err = env.svc.Close(ctx, env.client, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
}

func TestReopenClearsResolutionState(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	env.clock.Set(time.Date(2025, time.February, 3, 8, 0, 0, 0, time.UTC))
	ticket := env.ticketInProgress(t, domain.PriorityMedia)

	env.clock.Set(time.Date(2025, time.February, 3, 12, 0, 0, 0, time.UTC))
	_, err := env.svc.Resolve(ctx, env.tech, ticket.ID, "parche aplicado")
	require.NoError(t, err)
	_, err = env.svc.Close(ctx, env.admin, ticket.ID)
	require.NoError(t, err)

	_, err = env.svc.Reopen(ctx, env.client, ticket.ID, "")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	reopened, err := env.svc.Reopen(ctx, env.client, ticket.ID, "el problema volvió")
	require.NoError(t, err)

	// still assigned, so it returns straight to work
	assert.Equal(t, domain.StatusEnProceso, reopened.Status)
	assert.Nil(t, reopened.ResolvedAt)
	assert.Nil(t, reopened.ClosedAt)
	assert.Nil(t, reopened.ResolutionTimeHours)
	assert.False(t, reopened.SLABreach)

	// a later resolve recomputes against the original creation time
	env.clock.Set(time.Date(2025, time.February, 3, 18, 0, 0, 0, time.UTC))
	resolved, err := env.svc.Resolve(ctx, env.tech, ticket.ID, "ahora sí")
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolutionTimeHours)
	assert.InDelta(t, 10.0, *resolved.ResolutionTimeHours, 0.001)
}

func TestReopenUnassignedLandsOnAsignado(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.ticketInProgress(t, domain.PriorityMedia)
	_, err := env.svc.Resolve(ctx, env.tech, ticket.ID, "ok")
	require.NoError(t, err)

	// drop the assignee directly to simulate staff churn
	stored, err := env.store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	stored.AssignedTo = nil
	require.NoError(t, env.store.Tickets().Update(ctx, stored))

	reopened, err := env.svc.Reopen(ctx, env.admin, ticket.ID, "sin responsable")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAsignado, reopened.Status)
}

func TestStatusChangeWritesSingleHistoryRow(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)
	_, err := env.svc.Assign(ctx, env.admin, ticket.ID, env.tech.ID)
	require.NoError(t, err)
	_, err = env.svc.Accept(ctx, env.tech, ticket.ID)
	require.NoError(t, err)
	_, err = env.svc.MarkPendingClient(ctx, env.tech, ticket.ID)
	require.NoError(t, err)
	_, err = env.svc.ResumeWork(ctx, env.tech, ticket.ID)
	require.NoError(t, err)

	// created, assigned, accepted, pending, resumed: exactly five rows
	history := env.store.historyFor(ticket.ID)
	assert.Len(t, history, 5)
	assert.Equal(t, domain.ActionCreated, history[0].Action)
	assert.Equal(t, domain.ActionAssigned, history[1].Action)
	for _, entry := range history[2:] {
		assert.Equal(t, domain.ActionStatusChanged, entry.Action)
	}
	assert.Equal(t, domain.StatusPendienteCliente.Name(), history[3].NewValue)
	assert.Equal(t, domain.StatusEnProceso.Name(), history[4].NewValue)
}

func TestAddCommentRules(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)

	_, err := env.svc.AddComment(ctx, env.client, ticket.ID, "nota interna", true)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	otherClient := env.store.seedUser(domain.User{Name: "Otro", Email: "otro@cliente.test", Role: domain.RoleClient, Active: true})
	_, err = env.svc.AddComment(ctx, otherClient, ticket.ID, "no es mío", false)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	comment, err := env.svc.AddComment(ctx, env.client, ticket.ID, "sigue igual", false)
	require.NoError(t, err)
	assert.False(t, comment.IsInternal)

	// a client comment never stamps the first response
	current, err := env.store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, current.FirstResponseAt)
}

func TestFirstStaffReplyStampsFirstResponse(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)

	// internal notes do not count as a response to the client
	_, err := env.svc.AddComment(ctx, env.tech, ticket.ID, "revisando logs", true)
	require.NoError(t, err)
	current, err := env.store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, current.FirstResponseAt)

	replyAt := time.Date(2025, time.March, 10, 10, 30, 0, 0, time.UTC)
	env.clock.Set(replyAt)
	_, err = env.svc.AddComment(ctx, env.tech, ticket.ID, "estamos en ello", false)
	require.NoError(t, err)

	current, err = env.store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, current.FirstResponseAt)
	assert.Equal(t, replyAt, *current.FirstResponseAt)

	// later replies never move the stamp
	env.clock.Set(replyAt.Add(time.Hour))
	_, err = env.svc.AddComment(ctx, env.tech2, ticket.ID, "¿sigue fallando?", false)
	require.NoError(t, err)
	current, err = env.store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, replyAt, *current.FirstResponseAt)
}

func TestCommentPreviewTruncatesOnRuneBoundary(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)

	body := strings.Repeat("ñ", 200)
	comment, err := env.svc.AddComment(ctx, env.client, ticket.ID, body, false)
	require.NoError(t, err)

	history := env.store.historyFor(ticket.ID)
	var recorded string
	for _, entry := range history {
		if entry.Action == domain.ActionCommented {
			recorded = entry.NewValue
		}
	}
	require.NotEmpty(t, recorded)
	assert.True(t, utf8.ValidString(recorded))
	assert.True(t, strings.HasSuffix(recorded, "..."))
	assert.Equal(t, 120, utf8.RuneCountInString(recorded))
	assert.Equal(t, body, comment.Body)
}

func TestPreview(t *testing.T) {
	cases := []struct {
		name string
		body string
		max  int
		want string
	}{
		{"short stays intact", "todo bien", 120, "todo bien"},
		{"trims whitespace", "  hola  ", 120, "hola"},
		{"ascii truncation", strings.Repeat("a", 10), 8, "aaaaa..."},
		{"multibyte truncation", "ñandú señaló el camino", 10, "ñandú s..."},
		{"tiny max keeps runes whole", "ñandú", 2, "ña"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := preview(tc.body, tc.max)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestSoftDeleteCascades(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	ticket := env.createTicket(t, domain.PriorityMedia)
	_, err := env.svc.AddComment(ctx, env.client, ticket.ID, "detalle extra", false)
	require.NoError(t, err)

	err = env.svc.SoftDelete(ctx, env.tech, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	require.NoError(t, env.svc.SoftDelete(ctx, env.admin, ticket.ID))

	_, err = env.store.Tickets().GetByID(ctx, ticket.ID)
	assert.Error(t, err)

	comments, err := env.store.Comments().ListByTicket(ctx, ticket.ID, true)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// deleting twice reports not found
	err = env.svc.SoftDelete(ctx, env.admin, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
