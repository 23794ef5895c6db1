// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secctx

import (
	"context"
	"net/http"

	"github.com/shaj13/go-guardian/v2/auth"
)

type secCtxKey struct{}

const (
	SystemUserId    = "system"
	AnonymousUserId = "anonymous"
)

type securityContextImpl struct {
	userId   string
	isSystem bool
}

func MakeUserContext(r *http.Request) context.Context {
	userId := AnonymousUserId
	if user := auth.User(r); user != nil && user.GetID() != "" {
		userId = user.GetID()
	}
	return context.WithValue(r.Context(), secCtxKey{}, securityContextImpl{userId: userId})
}

func MakeSysadminContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, secCtxKey{}, securityContextImpl{userId: SystemUserId, isSystem: true})
}

func IsSystem(ctx context.Context) bool {
	val, ok := ctx.Value(secCtxKey{}).(securityContextImpl)
	if !ok {
		return false
	}
	return val.isSystem
}

func GetUserId(ctx context.Context) string {
	val, ok := ctx.Value(secCtxKey{}).(securityContextImpl)
	if !ok {
		return ""
	}
	return val.userId
}
