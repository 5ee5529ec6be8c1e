package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"combgame/internal/bootstrap"
	"combgame/internal/domain/analysis"
	errs "combgame/internal/errors"
)

type AnalysisRepository struct {
	cfg   *bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewAnalysisRepository(cfg *bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{
		cfg:   cfg,
		log:   log,
		mongo: mongo,
	}
}

func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, a analysis.Analysis) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection("analyses")

	_, err := collection.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	r.log.Infof("analysis inserted successfully with id: %s", a.ID)
	return nil
}

func (r *AnalysisRepository) GetAnalysis(ctx context.Context, id string) (analysis.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection("analyses")
	filter := bson.M{"_id": id}

	var found analysis.Analysis
	err := collection.FindOne(ctx, filter).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return analysis.Analysis{}, fmt.Errorf("%w: %s", errs.ErrAnalysisNotFound, id)
	} else if err != nil {
		r.log.Error(err)
		return analysis.Analysis{}, err
	}

	return found, nil
}

// ListAnalyses returns one page of analyses, newest first. Pages start at 1.
func (r *AnalysisRepository) ListAnalyses(ctx context.Context, page int) (analysis.AnalysisPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection("analyses")

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.log.Error(err)
		return analysis.AnalysisPage{}, err
	}

	pageLimit := r.cfg.PageLimitAnalyses
	if pageLimit <= 0 {
		pageLimit = 20
	}
	totalPages := int((total + int64(pageLimit) - 1) / int64(pageLimit))

	skip, ok := pageSkip(page, pageLimit, totalPages)
	if !ok {
		return analysis.AnalysisPage{
			PageNum:    page,
			TotalPages: totalPages,
			Analyses:   []analysis.Analysis{},
		}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(pageLimit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error(err)
		return analysis.AnalysisPage{}, err
	}
	defer cursor.Close(ctx)

	analyses := make([]analysis.Analysis, 0, pageLimit)
	if err := cursor.All(ctx, &analyses); err != nil {
		return analysis.AnalysisPage{}, err
	}

	return analysis.AnalysisPage{
		PageNum:    page,
		TotalPages: totalPages,
		Analyses:   analyses,
	}, nil
}

// pageSkip is the number of documents before page. It reports false for
// pages past the last one, which need no query.
func pageSkip(page, pageLimit, totalPages int) (int64, bool) {
	if page < 1 || page > totalPages {
		return 0, false
	}
	return int64(page-1) * int64(pageLimit), true
}
