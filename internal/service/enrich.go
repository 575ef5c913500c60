package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// UnknownUsername is shown for authors whose profile cannot be resolved.
const UnknownUsername = "Unknown user"

// AuthorStatus records how an author was resolved.
type AuthorStatus int

const (
	AuthorResolved AuthorStatus = iota
	// AuthorMissing: the lookup worked but the profile no longer exists.
	AuthorMissing
	// AuthorUnavailable: the profile lookup itself failed.
	AuthorUnavailable
)

func (s AuthorStatus) String() string {
	switch s {
	case AuthorResolved:
		return "resolved"
	case AuthorMissing:
		return "missing"
	default:
		return "unavailable"
	}
}

// CountStatus records whether derived counts could be computed.
type CountStatus int

const (
	CountOK CountStatus = iota
	CountUnavailable
)

type Author struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

func unknownAuthor(id uuid.UUID) Author {
	return Author{ID: id, Username: UnknownUsername}
}

func authorOf(p *models.Profile) Author {
	return Author{ID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
}

// EnrichedRecipe is a recipe row joined with its author and derived counts.
type EnrichedRecipe struct {
	models.Recipe
	Author        Author       `json:"author"`
	AuthorStatus  AuthorStatus `json:"-"`
	CommentsCount int64        `json:"comments_count"`
	LikesCount    int64        `json:"likes_count"`
	CountStatus   CountStatus  `json:"-"`
}

type EnrichedComment struct {
	models.Comment
	Author       Author       `json:"author"`
	AuthorStatus AuthorStatus `json:"-"`
	LikesCount   int64        `json:"likes_count"`
	CountStatus  CountStatus  `json:"-"`
}

// RecipeDetail is a single recipe with its comments.
type RecipeDetail struct {
	EnrichedRecipe
	Comments       []EnrichedComment `json:"comments"`
	CommentsStatus CountStatus       `json:"-"`
}

// Enricher joins raw rows with profile, comment and like data. It only reads
// and never modifies the rows it is given.
type Enricher struct {
	profiles     ProfileStore
	comments     CommentStore
	recipeLikes  ToggleStore
	commentLikes ToggleStore
	log          zerolog.Logger
}

func NewEnricher(profiles ProfileStore, comments CommentStore, recipeLikes, commentLikes ToggleStore, log zerolog.Logger) *Enricher {
	return &Enricher{
		profiles:     profiles,
		comments:     comments,
		recipeLikes:  recipeLikes,
		commentLikes: commentLikes,
		log:          log,
	}
}

// EnrichRecipes resolves all owners with one profile lookup and all counts with
// one grouped query per table. Partial failures degrade to the unknown author
// or zero counts; an error is returned only when ctx is done.
func (e *Enricher) EnrichRecipes(ctx context.Context, rows []models.Recipe) ([]EnrichedRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]EnrichedRecipe, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ownerIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	recipeIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		recipeIDs = append(recipeIDs, r.ID)
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			ownerIDs = append(ownerIDs, r.UserID)
		}
	}

	authors, authorsOK := e.lookupAuthors(ctx, ownerIDs)

	commentCounts, err := e.comments.CountByRecipes(ctx, recipeIDs)
	commentsOK := err == nil
	if err != nil {
		e.log.Warn().Err(err).Msg("comment count lookup failed")
	}
	likeCounts, err := e.recipeLikes.CountByTargets(ctx, recipeIDs)
	likesOK := err == nil
	if err != nil {
		e.log.Warn().Err(err).Msg("like count lookup failed")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range rows {
		er := EnrichedRecipe{Recipe: r}
		er.Author, er.AuthorStatus = resolveAuthor(r.UserID, authors, authorsOK)
		er.CommentsCount = commentCounts[r.ID]
		er.LikesCount = likeCounts[r.ID]
		if !commentsOK || !likesOK {
			er.CountStatus = CountUnavailable
		}
		out = append(out, er)
	}
	return out, nil
}

// EnrichRecipe enriches one recipe and attaches its comments and like count.
func (e *Enricher) EnrichRecipe(ctx context.Context, row *models.Recipe) (*RecipeDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detail := &RecipeDetail{EnrichedRecipe: EnrichedRecipe{Recipe: *row}}

	authors, ok := e.lookupAuthors(ctx, []uuid.UUID{row.UserID})
	detail.Author, detail.AuthorStatus = resolveAuthor(row.UserID, authors, ok)

	likes, err := e.recipeLikes.Count(ctx, row.ID)
	if err != nil {
		e.log.Warn().Err(err).Str("recipe_id", row.ID.String()).Msg("like count lookup failed")
		detail.CountStatus = CountUnavailable
	}
	detail.LikesCount = likes

	comments, err := e.comments.ListByRecipe(ctx, row.ID)
	if err != nil {
		e.log.Warn().Err(err).Str("recipe_id", row.ID.String()).Msg("comment lookup failed")
		detail.CountStatus = CountUnavailable
		detail.CommentsStatus = CountUnavailable
		comments = nil
	}
	detail.Comments = e.enrichComments(ctx, comments)
	detail.CommentsCount = int64(len(comments))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return detail, nil
}

// EnrichComments attaches authors and like counts to comments that were
// loaded with their Author association.
func (e *Enricher) EnrichComments(ctx context.Context, comments []models.Comment) ([]EnrichedComment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := e.enrichComments(ctx, comments)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Enricher) enrichComments(ctx context.Context, comments []models.Comment) []EnrichedComment {
	out := make([]EnrichedComment, 0, len(comments))
	if len(comments) == 0 {
		return out
	}

	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	likes, err := e.commentLikes.CountByTargets(ctx, ids)
	if err != nil {
		e.log.Warn().Err(err).Msg("comment like count lookup failed")
	}

	for _, c := range comments {
		ec := EnrichedComment{Comment: c, LikesCount: likes[c.ID]}
		if c.Author != nil {
			ec.Author = authorOf(c.Author)
		} else {
			ec.Author = unknownAuthor(c.UserID)
			ec.AuthorStatus = AuthorMissing
		}
		ec.Comment.Author = nil
		if err != nil {
			ec.CountStatus = CountUnavailable
		}
		out = append(out, ec)
	}
	return out
}

// lookupAuthors issues exactly one batched profile query.
func (e *Enricher) lookupAuthors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Author, bool) {
	profiles, err := e.profiles.FindByIDs(ctx, ids)
	if err != nil {
		e.log.Warn().Err(err).Int("owners", len(ids)).Msg("profile batch lookup failed")
		return nil, false
	}
	authors := make(map[uuid.UUID]Author, len(profiles))
	for i := range profiles {
		authors[profiles[i].ID] = authorOf(&profiles[i])
	}
	return authors, true
}

func resolveAuthor(id uuid.UUID, authors map[uuid.UUID]Author, ok bool) (Author, AuthorStatus) {
	if !ok {
		return unknownAuthor(id), AuthorUnavailable
	}
	if a, found := authors[id]; found {
		return a, AuthorResolved
	}
	return unknownAuthor(id), AuthorMissing
}
