/*
** Copyright (c) 2025 Oracle and/or its affiliates.
**
** The Universal Permissive License (UPL), Version 1.0
**
** Subject to the condition set forth below, permission is hereby granted to any
** person obtaining a copy of this software, associated documentation and/or data
** (collectively the "Software"), free of charge and under any and all copyright
** rights in the Software, and any and all patent rights owned or freely
** licensable by each licensor hereunder covering either (i) the unmodified
** Software as contributed to or provided by such licensor, or (ii) the Larger
** Works (as defined below), to deal in both
**
** (a) the Software, and
** (b) any piece of software and/or hardware listed in the lrgrwrks.txt file if
** one is included with the Software (each a "Larger Work" to which the Software
** is contributed by such licensors),
**
** without restriction, including without limitation the rights to copy, create
** derivative works of, display, perform, and distribute the Software and make,
** use, sell, offer for sale, import, export, have made, and have sold the
** Software and the Larger Work(s), and to sublicense the foregoing rights on
** either these or other terms.
**
** This license is subject to the following condition:
** The above copyright notice and either this complete permission notice or at
** a minimum a reference to the UPL must be included in all copies or
** substantial portions of the Software.
**
** THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
** IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
** FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
** AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
** LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
** OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
** SOFTWARE.
 */

package oci

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/filestorage"
)

// FileSystem is the subset of a File Storage file system this tool acts on.
type FileSystem struct {
	OCID           string
	DisplayName    string
	KmsKeyOCID     string
	LifecycleState string
	FreeformTags   map[string]string
}

type FileStorageService interface {
	GetFileSystem(ctx context.Context, fileSystemOCID string) (*FileSystem, error)
	UpdateKmsKey(ctx context.Context, fileSystemOCID string, keyOCID string) error
}

type fileStorageService struct {
	logger    logr.Logger
	fssClient filestorage.FileStorageClient
}

func NewFileStorageService(
	logger logr.Logger,
	provider common.ConfigurationProvider) (FileStorageService, error) {

	fssClient, err := filestorage.NewFileStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, err
	}

	return &fileStorageService{
		logger:    logger.WithName("fileStorageService"),
		fssClient: fssClient,
	}, nil
}

func (f *fileStorageService) GetFileSystem(ctx context.Context, fileSystemOCID string) (*FileSystem, error) {
	request := filestorage.GetFileSystemRequest{
		FileSystemId: common.String(fileSystemOCID),
	}

	response, err := f.fssClient.GetFileSystem(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("fetching file system %s: %w", fileSystemOCID, err)
	}

	return &FileSystem{
		OCID:           fileSystemOCID,
		DisplayName:    stringValue(response.DisplayName),
		KmsKeyOCID:     stringValue(response.KmsKeyId),
		LifecycleState: string(response.LifecycleState),
		FreeformTags:   response.FreeformTags,
	}, nil
}

// UpdateKmsKey sets the customer-managed key on a file system. The update is
// retried on 409 because File Storage rejects concurrent mutations while the
// file system is still settling after a switchover.
func (f *fileStorageService) UpdateKmsKey(ctx context.Context, fileSystemOCID string, keyOCID string) error {
	retryPolicy := conflictRetryPolicy()

	request := filestorage.UpdateFileSystemRequest{
		FileSystemId: common.String(fileSystemOCID),
		UpdateFileSystemDetails: filestorage.UpdateFileSystemDetails{
			KmsKeyId: common.String(keyOCID),
		},
		RequestMetadata: common.RequestMetadata{
			RetryPolicy: &retryPolicy,
		},
	}

	if _, err := f.fssClient.UpdateFileSystem(ctx, request); err != nil {
		return fmt.Errorf("updating file system %s: %w", fileSystemOCID, err)
	}

	return nil
}
