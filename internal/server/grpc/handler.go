package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func wireUser(u models.User) pb.User {
	return pb.User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func required(req *structpb.Struct, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v := pb.String(req, k)
		if v == "" {
			return nil, status.Errorf(codes.InvalidArgument, "%s is required", k)
		}
		out[k] = v
	}
	return out, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return pb.NewUserResponse(wireUser(*u)), nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f, err := required(req, pb.FieldEmail, pb.FieldPassword, pb.FieldName)
	if err != nil {
		return nil, err
	}

	res, err := s.auth.Register(ctx, f[pb.FieldEmail], f[pb.FieldPassword], f[pb.FieldName])
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", res.User.ID)
	return pb.NewAuthResponse(wireUser(res.User), res.Token), nil
}

func (s *GRPCServer) LoginUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f, err := required(req, pb.FieldEmail, pb.FieldPassword)
	if err != nil {
		return nil, err
	}

	res, err := s.auth.Login(ctx, f[pb.FieldEmail], f[pb.FieldPassword])
	if err != nil {
		return nil, toStatus(err)
	}

	return pb.NewAuthResponse(wireUser(res.User), res.Token), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return pb.NewPingResponse("OK"), nil
}
