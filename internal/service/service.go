// Package service реализует диалоговую машину состояний бота заказов.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/catalog"
	"github.com/mmeshcher/makburgers-bot/internal/chat"
	"github.com/mmeshcher/makburgers-bot/internal/metrics"
	"github.com/mmeshcher/makburgers-bot/internal/model"
	"github.com/mmeshcher/makburgers-bot/internal/order"
	"github.com/mmeshcher/makburgers-bot/internal/validation"
)

// SessionStore описывает контракт хранилища профилей и сессий, используемый сервисом.
type SessionStore interface {
	Get(userID int64) (model.UserProfile, bool)
	Upsert(p model.UserProfile) error
	Profiles() map[int64]model.UserProfile
	Acquire(userID int64) (*model.Session, func())
}

// Snapshotter сохраняет снимок профилей.
type Snapshotter interface {
	Save(ctx context.Context, profiles map[int64]model.UserProfile) error
}

// Notifier отправляет тикет заказа администратору.
type Notifier interface {
	NotifyOrder(ctx context.Context, t model.OrderTicket) error
}

// Queue принимает тикеты, которые не удалось доставить сразу.
type Queue interface {
	Push(ctx context.Context, t model.OrderTicket) error
}

// Deps зависимости сервиса.
type Deps struct {
	Store     SessionStore
	Catalog   *catalog.Catalog
	Engine    *order.Engine
	Snapshots Snapshotter
	Notifier  Notifier
	Queue     Queue
	Metrics   *metrics.BotMetrics
	Logger    *zap.Logger
	Now       func() time.Time
	NewID     func() string
}

// Service обрабатывает события пользователей.
type Service struct {
	store     SessionStore
	catalog   *catalog.Catalog
	engine    *order.Engine
	snapshots Snapshotter
	notifier  Notifier
	queue     Queue
	metrics   *metrics.BotMetrics
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	saveMu sync.Mutex
}

// NewService создаёт сервис с указанными зависимостями.
func NewService(d Deps) *Service {
	s := &Service{
		store:     d.Store,
		catalog:   d.Catalog,
		engine:    d.Engine,
		snapshots: d.Snapshots,
		notifier:  d.Notifier,
		queue:     d.Queue,
		metrics:   d.Metrics,
		logger:    d.Logger,
		now:       d.Now,
		newID:     d.NewID,
	}
	if s.engine == nil {
		s.engine = order.NewEngine(s.catalog)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Handle применяет событие к сессии пользователя и возвращает ответ.
// События одного пользователя обрабатываются последовательно.
func (s *Service) Handle(ctx context.Context, userID int64, ev chat.Event) chat.Response {
	s.metrics.IncEvent(ev.Kind())

	sess, release := s.store.Acquire(userID)
	defer release()

	profile, registered := s.store.Get(userID)
	if registered && !sessionStarted(sess.State) {
		sess.Reset()
	}

	switch e := ev.(type) {
	case chat.Start:
		return s.onStart(sess, registered)
	case chat.Contact:
		if registered {
			return reply(textNotUnderstood)
		}
		return s.onContact(ctx, userID, sess, e)
	}

	if !registered {
		return reply(textRegisterFirst)
	}

	switch e := ev.(type) {
	case chat.Text:
		return s.onText(sess, e.Text)
	case chat.Location:
		return s.onLocation(sess, e)
	case chat.Button:
		return s.onButton(ctx, profile, sess, e.Action)
	default:
		return reply(textNotUnderstood)
	}
}

// StateOf возвращает текущее состояние пользователя.
func (s *Service) StateOf(userID int64) model.State {
	sess, release := s.store.Acquire(userID)
	defer release()

	if _, ok := s.store.Get(userID); ok && !sessionStarted(sess.State) {
		return model.StateMainMenu
	}
	return sess.State
}

// Persist сохраняет снимок всех профилей. Сохранения выполняются последовательно.
func (s *Service) Persist(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.snapshots.Save(ctx, s.store.Profiles())
}

func sessionStarted(st model.State) bool {
	return st != model.StateUnregistered && st != model.StateAwaitingContact
}

func (s *Service) onStart(sess *model.Session, registered bool) chat.Response {
	if registered {
		sess.Reset()
		return respond(mainMenu())
	}
	sess.Enter(model.StateAwaitingContact)
	return respond(contactPrompt(textAskContact))
}

func (s *Service) onContact(ctx context.Context, userID int64, sess *model.Session, c chat.Contact) chat.Response {
	if c.UserID != userID {
		s.logger.Info("foreign contact rejected", zap.Int64("userID", userID), zap.Int64("contactUserID", c.UserID))
		return respond(contactPrompt(textForeignContact))
	}

	phone, err := validation.NormalizePhone(c.Phone)
	if err != nil {
		s.logger.Info("invalid phone rejected", zap.Int64("userID", userID), zap.Error(err))
		return respond(contactPrompt(textInvalidPhone))
	}

	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		name = phone
	}

	profile := model.UserProfile{ID: userID, Phone: phone, Name: name, RegisteredAt: s.now()}
	if err := s.store.Upsert(profile); err != nil {
		s.logger.Error("upsert profile error", zap.Int64("userID", userID), zap.Error(err))
		return respond(contactPrompt(textRegisterFailed))
	}

	if err := s.Persist(ctx); err != nil {
		s.logger.Error("save snapshot error", zap.Int64("userID", userID), zap.Error(err))
	}

	s.logger.Info("user registered", zap.Int64("userID", userID))

	s.engine.Clear(sess.Cart)
	sess.Reset()
	return respond(
		chat.Reply{Text: fmt.Sprintf(textRegistered, phone), Keyboard: chat.RemoveKeyboard{}},
		mainMenu(),
	)
}

func (s *Service) onText(sess *model.Session, text string) chat.Response {
	switch strings.TrimSpace(text) {
	case labelOrder:
		return respond(s.categoriesScreen(sess, false))
	case labelCart:
		return respond(s.cartScreen(sess, false))
	case labelBack, labelCancel:
		sess.Reset()
		return respond(mainMenu())
	default:
		return reply(textNotUnderstood)
	}
}

func (s *Service) onLocation(sess *model.Session, loc chat.Location) chat.Response {
	if sess.State != model.StateAwaitingLocation {
		return reply(textNotUnderstood)
	}

	c := model.Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude}
	sess.ProposeLocation(c)
	confirm := chat.InlineKeyboard{Rows: [][]chat.InlineButton{{
		{Label: labelYes, Action: chat.ConfirmLocation{Confirmed: true}},
		{Label: labelNo, Action: chat.ConfirmLocation{Confirmed: false}},
	}}}
	return respond(
		chat.Reply{Text: textLocationAccept, Keyboard: chat.RemoveKeyboard{}},
		chat.Reply{Text: fmt.Sprintf(textConfirmLocation, c.Latitude, c.Longitude), Keyboard: confirm},
	)
}

func (s *Service) onButton(ctx context.Context, profile model.UserProfile, sess *model.Session, action chat.Action) chat.Response {
	switch a := action.(type) {
	case chat.Ignore:
		return chat.Response{}

	case chat.SelectCategory:
		screen, err := s.itemsScreen(a.Name, sess.Cart)
		if err != nil {
			return stale(s.categoriesScreen(sess, true))
		}
		sess.OpenItems(a.Name)
		return respond(screen)

	case chat.IncreaseQuantity:
		return s.adjust(sess, a.Item, 1)

	case chat.DecreaseQuantity:
		return s.adjust(sess, a.Item, -1)

	case chat.BackToCategories:
		return respond(s.categoriesScreen(sess, true))

	case chat.ViewCart:
		return respond(s.cartScreen(sess, true))

	case chat.ClearCart:
		s.engine.Clear(sess.Cart)
		resp := respond(s.categoriesScreen(sess, true))
		resp.Notice = noticeCartClear
		return resp

	case chat.StartCheckout:
		if s.engine.Total(sess.Cart) == 0 {
			resp := respond(s.cartScreen(sess, true))
			resp.Notice = noticeEmptyCart
			return resp
		}
		sess.Enter(model.StateChoosingDeliveryMethod)
		return respond(deliveryPrompt())

	case chat.ChooseDelivery:
		if sess.State != model.StateChoosingDeliveryMethod {
			return stale(s.cartScreen(sess, true))
		}
		if !a.Delivery {
			return s.submit(ctx, profile, sess, model.DeliveryPickup, nil)
		}
		sess.AwaitLocation()
		return respond(chat.Reply{Text: textDeliveryChosen, Edit: true}, locationPrompt())

	case chat.ConfirmLocation:
		loc, ok := sess.PendingLocation()
		if !ok {
			return stale(s.cartScreen(sess, true))
		}
		if a.Confirmed {
			return s.submit(ctx, profile, sess, sess.Delivery(), &loc)
		}
		sess.AwaitLocation()
		return respond(chat.Reply{Text: textLocationDropped, Edit: true}, locationPrompt())

	default:
		sess.Reset()
		return stale(mainMenu())
	}
}

func (s *Service) adjust(sess *model.Session, code string, delta int) chat.Response {
	name, ok := sess.OpenCategory()
	if !ok || !s.catalog.Contains(name, code) {
		return stale(s.categoriesScreen(sess, true))
	}
	s.engine.SetQuantity(sess.Cart, code, delta)
	screen, err := s.itemsScreen(name, sess.Cart)
	if err != nil {
		return stale(s.categoriesScreen(sess, true))
	}
	return respond(screen)
}

func respond(replies ...chat.Reply) chat.Response {
	return chat.Response{Replies: replies}
}

func reply(text string) chat.Response {
	return respond(chat.Reply{Text: text})
}

func stale(replies ...chat.Reply) chat.Response {
	return chat.Response{Notice: noticeStale, Replies: replies}
}
