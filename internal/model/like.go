package model

import "errors"

// LikeKind discriminates the three content kinds a like can point at.
type LikeKind string

const (
	LikeVideo   LikeKind = "video"
	LikeComment LikeKind = "comment"
	LikeTweet   LikeKind = "tweet"
)

// LikeTarget is a tagged reference to exactly one likeable entity. Modelling
// the target as a variant (rather than three optional fields) makes it
// impossible to construct a like pointing at two kinds at once.
type LikeTarget struct {
	Kind LikeKind
	ID   int64
}

func VideoTarget(id int64) LikeTarget   { return LikeTarget{Kind: LikeVideo, ID: id} }
func CommentTarget(id int64) LikeTarget { return LikeTarget{Kind: LikeComment, ID: id} }
func TweetTarget(id int64) LikeTarget   { return LikeTarget{Kind: LikeTweet, ID: id} }

var (
	// ErrLikeTargetNotFound is returned when the liked entity does not exist
	ErrLikeTargetNotFound = errors.New("like target not found")

	// ErrInvalidLikeKind guards against an unknown target discriminator
	ErrInvalidLikeKind = errors.New("invalid like target kind")
)
