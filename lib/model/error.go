/*
 * Copyright 2025 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package model

import "fmt"

type InternalError struct {
	err error
}

func NewInternalError(err error) *InternalError {
	return &InternalError{err: err}
}

func (e *InternalError) Error() string {
	return e.err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.err
}

type NotFoundError struct {
	err error
}

func NewNotFoundError(err error) *NotFoundError {
	return &NotFoundError{err: err}
}

func (e *NotFoundError) Error() string {
	return e.err.Error()
}

func (e *NotFoundError) Unwrap() error {
	return e.err
}

type InvalidInputError struct {
	err error
}

func NewInvalidInputError(err error) *InvalidInputError {
	return &InvalidInputError{err: err}
}

func (e *InvalidInputError) Error() string {
	return e.err.Error()
}

func (e *InvalidInputError) Unwrap() error {
	return e.err
}

type ResourceBusyError struct {
	err error
}

func NewResourceBusyError(err error) *ResourceBusyError {
	return &ResourceBusyError{err: err}
}

func (e *ResourceBusyError) Error() string {
	return e.err.Error()
}

func (e *ResourceBusyError) Unwrap() error {
	return e.err
}

// ContainerError wraps a load, save or backup failure with the operation
// and the backend location it was raised against.
type ContainerError struct {
	Op       string
	Backend  string
	Location string
	err      error
}

func NewContainerError(op, backend, location string, err error) *ContainerError {
	return &ContainerError{
		Op:       op,
		Backend:  backend,
		Location: location,
		err:      err,
	}
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("%s (%s '%s'): %s", e.Op, e.Backend, e.Location, e.err.Error())
}

func (e *ContainerError) Unwrap() error {
	return e.err
}
