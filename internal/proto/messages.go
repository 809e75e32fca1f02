package proto

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// Field names used in request and response structs.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldUser     = "user"
	FieldToken    = "token"
	FieldStatus   = "status"

	fieldID        = "id"
	fieldCreatedAt = "created_at"
)

// User is the wire view of a directory user.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

func (u User) value() map[string]any {
	return map[string]any{
		fieldID:        u.ID,
		FieldEmail:     u.Email,
		FieldName:      u.Name,
		fieldCreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewRegisterRequest fails when a field is not valid UTF-8; request fields
// come straight from the user.
func NewRegisterRequest(email, password, name string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldEmail: email, FieldPassword: password, FieldName: name})
}

func NewLoginRequest(email, password string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldEmail: email, FieldPassword: password})
}

func NewEmpty() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}
}

func NewUserResponse(u User) *structpb.Struct {
	return mustStruct(map[string]any{FieldUser: u.value()})
}

func NewAuthResponse(u User, token string) *structpb.Struct {
	return mustStruct(map[string]any{FieldUser: u.value(), FieldToken: token})
}

func NewPingResponse(status string) *structpb.Struct {
	return mustStruct(map[string]any{FieldStatus: status})
}

// String returns the string field key of s, or "" when it is absent or not
// a string.
func String(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// UserFrom extracts the nested user object from a response.
func UserFrom(s *structpb.Struct) (User, error) {
	v, ok := s.GetFields()[FieldUser]
	if !ok || v.GetStructValue() == nil {
		return User{}, fmt.Errorf("response has no %q object", FieldUser)
	}
	us := v.GetStructValue()

	u := User{
		ID:    String(us, fieldID),
		Email: String(us, FieldEmail),
		Name:  String(us, FieldName),
	}
	if ts := String(us, fieldCreatedAt); ts != "" {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return User{}, fmt.Errorf("bad %s: %w", fieldCreatedAt, err)
		}
		u.CreatedAt = t
	}
	return u, nil
}

// mustStruct builds server responses. Their strings come from decoded
// protobuf requests, the directory or the token codec, all valid UTF-8.
func mustStruct(m map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	if err != nil {
		panic(err)
	}
	return s
}
