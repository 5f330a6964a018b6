package book

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/avoronov/library-catalog/internal/model"
	"github.com/avoronov/library-catalog/internal/repository"
	"github.com/avoronov/library-catalog/pkg/kafka"
)

type Service struct {
	repo     repository.BookRepository
	producer sarama.SyncProducer
	log      *zap.Logger
}

// NewService builds the catalog service. producer may be nil, in which case
// change events are not published.
func NewService(repo repository.BookRepository, producer sarama.SyncProducer, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
		log:      log.Named("book"),
	}
}

func (s *Service) List(ctx context.Context, page, size int) (model.ListBooks, error) {
	return s.repo.List(ctx, page, size)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req model.BookCreateRequest) (model.Book, error) {
	book := model.Book{
		Title:  req.Title,
		Author: req.Author,
		Cover:  req.Cover,
	}
	if req.Inventory != nil {
		book.Inventory = *req.Inventory
	}
	if req.DailyFee != nil {
		book.DailyFee = *req.DailyFee
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish("created", created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req model.BookCreateRequest) (model.Book, error) {
	book := model.Book{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		Cover:  req.Cover,
	}
	if req.Inventory != nil {
		book.Inventory = *req.Inventory
	}
	if req.DailyFee != nil {
		book.DailyFee = *req.DailyFee
	}

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish("updated", updated)
	return updated, nil
}

func (s *Service) PartialUpdate(ctx context.Context, id int64, req model.BookPatchRequest) (model.Book, error) {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Book{}, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = req.Author
	}
	if req.Cover != nil {
		book.Cover = *req.Cover
	}
	if req.Inventory != nil {
		book.Inventory = *req.Inventory
	}
	if req.DailyFee != nil {
		book.DailyFee = *req.DailyFee
	}

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish("updated", updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("deleted", book)
	return nil
}

type changeEvent struct {
	Action string     `json:"action"`
	Book   model.Book `json:"book"`
}

func (s *Service) publish(action string, book model.Book) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(changeEvent{Action: action, Book: book})
	if err != nil {
		s.log.Warn("marshal change event", zap.Error(err))
		return
	}
	if err := kafka.Publish(s.producer, kafka.BooksTopic, strconv.FormatInt(book.ID, 10), payload); err != nil {
		s.log.Warn("publish change event", zap.Int64("book_id", book.ID), zap.Error(err))
	}
}
