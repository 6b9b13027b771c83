// Package rvmrpc exposes the reflection VM over gRPC: a client ships a
// packed program (plus type arguments) and gets back the resolved Type IR,
// without linking against package rvm itself.
//
// There is no protoc-generated stub here — the service descriptor is built
// the same way the teacher's grpc builtins do it for arbitrary
// user-supplied .proto files (internal/evaluator/builtins_grpc.go
// builtinGrpcLoadProto/builtinGrpcRegister): parse an in-memory .proto
// source with protoparse, then hand-assemble a grpc.ServiceDesc whose
// Methods decode/encode protoreflect dynamic messages. The wire payload
// for the program/arguments/result themselves is JSON inside a `bytes`
// field rather than a dedicated message schema — the Type IR's shape is
// this package's own concern, not something worth hand-maintaining a
// parallel .proto mirror of.
package rvmrpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/funvibe/rvm/internal/rvm"
	"github.com/funvibe/rvm/internal/typeir"
)

const serviceProto = `
syntax = "proto3";
package rvmrpc;

message ResolveRequest {
  bytes program_json = 1;
  bytes args_json = 2;
}

message ResolveResponse {
  bytes node_json = 1;
  string error = 2;
  string trace_id = 3;
}

service Reflection {
  rpc Resolve(ResolveRequest) returns (ResolveResponse);
}
`

const serviceFileName = "rvmrpc.proto"

func loadServiceDescriptor() (*desc.ServiceDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			serviceFileName: serviceProto,
		}),
	}
	fds, err := parser.ParseFiles(serviceFileName)
	if err != nil {
		return nil, fmt.Errorf("rvmrpc: parsing service descriptor: %w", err)
	}
	sd := fds[0].FindService("rvmrpc.Reflection")
	if sd == nil {
		return nil, fmt.Errorf("rvmrpc: service descriptor missing Reflection")
	}
	return sd, nil
}

// Handler resolves a raw Packed Program plus JSON-encoded type arguments
// into the resulting Type IR. Swappable for tests.
type Handler func(programJSON, argsJSON []byte) (*typeir.Node, error)

// DefaultHandler decodes a Packed Program (as its raw JSON array form) and
// a JSON array of already-resolved argument nodes, and runs ResolveType.
func DefaultHandler(programJSON, argsJSON []byte) (*typeir.Node, error) {
	var raw []any
	if err := json.Unmarshal(programJSON, &raw); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	var args []*typeir.Node
	if len(argsJSON) > 0 {
		if err := json.Unmarshal(argsJSON, &args); err != nil {
			return nil, fmt.Errorf("decoding args: %w", err)
		}
	}
	return rvm.ResolveType(raw, args)
}

// Register wires the Reflection service into an existing *grpc.Server
// using handler to service each call.
func Register(server *grpc.Server, handler Handler) error {
	sd, err := loadServiceDescriptor()
	if err != nil {
		return err
	}
	method := sd.FindMethodByName("Resolve")
	if method == nil {
		return fmt.Errorf("rvmrpc: service descriptor missing Resolve method")
	}

	impl := &reflectionHandler{handler: handler, method: method}

	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: sd.GetFullyQualifiedName(),
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Resolve",
				Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
					h := srv.(*reflectionHandler)
					return h.resolve(ctx, dec)
				},
			},
		},
		Metadata: serviceFileName,
	}, impl)

	return nil
}

type reflectionHandler struct {
	handler Handler
	method  *desc.MethodDescriptor
}

func (h *reflectionHandler) resolve(_ context.Context, dec func(any) error) (any, error) {
	req := dynamic.NewMessage(h.method.GetInputType())
	if err := dec(req); err != nil {
		return nil, err
	}

	traceID := uuid.NewString()
	resp := dynamic.NewMessage(h.method.GetOutputType())
	resp.SetFieldByName("trace_id", traceID)

	programJSON, _ := req.GetFieldByName("program_json").([]byte)
	argsJSON, _ := req.GetFieldByName("args_json").([]byte)

	node, err := h.handler(programJSON, argsJSON)
	if err != nil {
		resp.SetFieldByName("error", err.Error())
		return resp, nil
	}

	nodeJSON, err := json.Marshal(node)
	if err != nil {
		resp.SetFieldByName("error", fmt.Sprintf("encoding result: %v", err))
		return resp, nil
	}
	resp.SetFieldByName("node_json", nodeJSON)
	return resp, nil
}
