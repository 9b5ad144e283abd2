package service

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-projects/pkg/constants"
)

const pdfSample = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"

func TestUploadDocument(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	member := env.addUser(t, "bob", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil, member.ID)

	resp, err := env.documentSvc.Upload(creator.ID, project.ID, "thesis.pdf", int64(len(pdfSample)), strings.NewReader(pdfSample))
	require.NoError(t, err)
	assert.Equal(t, "thesis.pdf", resp.OriginalName)
	assert.Equal(t, "application/pdf", resp.MimeType)

	// 存储文件名为uuid, 不暴露原始文件名
	doc, err := env.docs.FindByID(resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "thesis.pdf", doc.Filename)
	assert.True(t, strings.HasSuffix(doc.Filename, ".pdf"))

	// 文件内容已落盘
	rc, err := env.store.Open(doc.UploadPath)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, pdfSample, string(data))

	// 成员收到上传通知
	assert.Len(t, env.notifs.forUser(member.ID), 1)
}

func TestUploadDocumentRejectsDisallowedType(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)

	script := "#!/bin/sh\nrm -rf /tmp/x\n"
	_, err := env.documentSvc.Upload(creator.ID, project.ID, "run.sh", int64(len(script)), strings.NewReader(script))
	require.Error(t, err)

	// 拒绝时既不落库也不落盘
	docs, _ := env.docs.ListByProject(project.ID)
	assert.Empty(t, docs)
	assert.Empty(t, env.store.files)
}

func TestUploadDocumentRejectsOversizedFile(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)

	_, err := env.documentSvc.Upload(creator.ID, project.ID, "big.pdf", constants.MaxDocumentSize+1, strings.NewReader(pdfSample))
	require.Error(t, err)
	assert.Empty(t, env.store.files)
}

func TestUploadDocumentCleansUpFileWhenInsertFails(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)
	env.docs.failNext = true

	_, err := env.documentSvc.Upload(creator.ID, project.ID, "thesis.pdf", int64(len(pdfSample)), strings.NewReader(pdfSample))
	require.Error(t, err)
	assert.Empty(t, env.store.files, "写库失败时应回收已落盘的文件")
}

func TestDownloadDocumentRequiresAccess(t *testing.T) {
	env := newTestEnv()
	creator := env.addUser(t, "alice", constants.RoleStudent)
	outsider := env.addUser(t, "eve", constants.RoleStudent)
	project := env.addProject(t, creator.ID, nil)

	resp, err := env.documentSvc.Upload(creator.ID, project.ID, "thesis.pdf", int64(len(pdfSample)), strings.NewReader(pdfSample))
	require.NoError(t, err)

	_, _, err = env.documentSvc.Download(outsider.ID, resp.ID)
	require.Error(t, err)

	doc, rc, err := env.documentSvc.Download(creator.ID, resp.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "thesis.pdf", doc.OriginalName)
}
