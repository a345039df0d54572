package orchestrator

import (
	"context"

	"github.com/julianstephens/hermione/internal/captions"
	"github.com/julianstephens/hermione/internal/constants"
	apperr "github.com/julianstephens/hermione/internal/errors"
	"github.com/julianstephens/hermione/internal/host"
	"github.com/julianstephens/hermione/internal/models"
)

const (
	opPreview = "preview"
	opFull    = "full-generation"
	opUpload  = "host-upload"
	opLoad    = "load-selected-video"
)

func (o *Orchestrator) preview(ctx context.Context, url string, settings models.Settings, previous *models.VideoArtifact) (models.Preview, error) {
	req := captions.PreviewRequest{URL: url, Settings: settings}
	if previous != nil {
		req.OriginalVideoPath = previous.OriginalVideoPath
	}
	return o.captions.Preview(ctx, req)
}

// PreviewGeneration renders a subtitled sample of url with settings.
// previous carries the original video path of an earlier preview so the
// backend reuses its source. An empty url means no video is loaded.
func (o *Orchestrator) PreviewGeneration(ctx context.Context, url string, settings models.Settings, previous *models.VideoArtifact) (models.Preview, error) {
	if url == "" {
		return models.Preview{}, o.precondition(opPreview, constants.MsgMissingVideo)
	}

	ctx, t, err := o.begin(ctx, opPreview, true)
	if err != nil {
		return models.Preview{}, err
	}

	p, err := o.preview(ctx, url, settings, previous)
	if err != nil {
		return models.Preview{}, o.fail(t, apperr.New(apperr.Transport, opPreview, constants.MsgFailedSubtitles, err))
	}
	if err := o.finish(t, nil); err != nil {
		return models.Preview{}, err
	}
	return p, nil
}

// FullGeneration renders the full subtitled video. ref selects the video;
// an empty ref falls back to the current selection. then runs with the
// result before the slot is released, so a screen advance completes while
// the operation still counts as in flight.
func (o *Orchestrator) FullGeneration(ctx context.Context, ref string, settings models.Settings, then func(models.SubbedVideoArtifact)) (models.SubbedVideoArtifact, error) {
	ctx, t, err := o.begin(ctx, opFull, false)
	if err != nil {
		return models.SubbedVideoArtifact{}, err
	}

	if ref == "" {
		sel, err := o.doc.ReadSelection(ctx)
		if err != nil {
			return models.SubbedVideoArtifact{}, o.fail(t, apperr.New(apperr.Transport, opFull, constants.MsgGenericRetry, err))
		}
		if sel.Count() == 0 {
			return models.SubbedVideoArtifact{}, o.fail(t, apperr.New(apperr.Precondition, opFull, constants.MsgNoContentSelected, nil))
		}
		ref = sel.First()
	}

	url, err := o.doc.TemporaryURL(ctx, ref)
	if err != nil {
		return models.SubbedVideoArtifact{}, o.fail(t, apperr.New(apperr.Transport, opFull, constants.MsgFailedGenerate, err))
	}

	subbed, err := o.captions.Transcribe(ctx, captions.TranscribeRequest{URL: url, Settings: settings})
	if err != nil {
		return models.SubbedVideoArtifact{}, o.fail(t, apperr.New(apperr.Transport, opFull, constants.MsgFailedGenerate, err))
	}

	if !o.commit(t) {
		return models.SubbedVideoArtifact{}, o.finish(t, nil)
	}
	if then != nil {
		then(subbed)
	}
	if err := o.finish(t, nil); err != nil {
		return models.SubbedVideoArtifact{}, err
	}
	return subbed, nil
}

// HostUpload adds the subtitled video to the design under the selected
// element. Both a selection and a rendered video are required.
func (o *Orchestrator) HostUpload(ctx context.Context, subbed *models.SubbedVideoArtifact) (models.UploadRecord, error) {
	if subbed == nil {
		return models.UploadRecord{}, o.precondition(opUpload, constants.MsgMissingVideo)
	}

	ctx, t, err := o.begin(ctx, opUpload, false)
	if err != nil {
		return models.UploadRecord{}, err
	}

	sel, err := o.doc.ReadSelection(ctx)
	if err != nil {
		return models.UploadRecord{}, o.fail(t, apperr.New(apperr.Transport, opUpload, constants.MsgUploadFailed, err))
	}
	if sel.Count() == 0 {
		return models.UploadRecord{}, o.fail(t, apperr.New(apperr.Precondition, opUpload, constants.MsgMissingVideo, nil))
	}
	parent := sel.First()

	ref, err := o.doc.UploadAsset(ctx, host.UploadRequest{
		Type:         constants.AssetVideo,
		URL:          subbed.URL,
		ThumbnailURL: subbed.ThumbnailURL,
		MimeType:     subbed.MimeType,
		ParentRef:    parent,
		Width:        subbed.Width,
		Height:       subbed.Height,
	})
	if err == nil {
		err = o.doc.AddElement(ctx, ref)
	}
	if err == nil {
		err = o.doc.SaveDraft(ctx)
	}
	if err != nil {
		return models.UploadRecord{}, o.fail(t, apperr.New(apperr.Transport, opUpload, constants.MsgUploadFailed, err))
	}

	err = o.finish(t, func(s *models.RequestState) {
		s.SuccessfulUpload = true
		s.Message = constants.MsgUploadStarted
	})
	if err != nil {
		return models.UploadRecord{}, err
	}
	return models.UploadRecord{
		AssetRef:  ref,
		ParentRef: parent,
		URL:       subbed.URL,
		Width:     subbed.Width,
		Height:    subbed.Height,
	}, nil
}

// Loaded is the result of LoadSelectedVideo
type Loaded struct {
	Ref     string
	Preview models.Preview
}

// LoadSelectedVideo previews the single selected video. then runs with the
// result before the slot is released.
func (o *Orchestrator) LoadSelectedVideo(ctx context.Context, settings models.Settings, previous *models.VideoArtifact, then func(Loaded)) (Loaded, error) {
	sel, err := o.doc.ReadSelection(ctx)
	if err != nil {
		return Loaded{}, o.precondition(opLoad, constants.MsgGenericRetry)
	}
	switch sel.Count() {
	case 0:
		return Loaded{}, o.precondition(opLoad, constants.MsgNoVideoSelected)
	case 1:
	default:
		return Loaded{}, o.precondition(opLoad, constants.MsgSingleVideo)
	}

	page, err := o.doc.PageContext(ctx)
	if err != nil {
		return Loaded{}, o.precondition(opLoad, constants.MsgGenericRetry)
	}
	if !page.HasDimensions {
		return Loaded{}, o.precondition(opLoad, constants.MsgNoDimensions)
	}

	ctx, t, err := o.begin(ctx, opLoad, true)
	if err != nil {
		return Loaded{}, err
	}

	ref := sel.First()
	url, err := o.doc.TemporaryURL(ctx, ref)
	if err != nil {
		return Loaded{}, o.fail(t, apperr.New(apperr.Transport, opLoad, constants.MsgGenericRetry, err))
	}

	p, err := o.preview(ctx, url, settings, previous)
	if err != nil {
		return Loaded{}, o.fail(t, apperr.New(apperr.Transport, opLoad, constants.MsgFailedTranscription, err))
	}

	res := Loaded{Ref: ref, Preview: p}
	if !o.commit(t) {
		return Loaded{}, o.finish(t, nil)
	}
	if then != nil {
		then(res)
	}
	if err := o.finish(t, nil); err != nil {
		return Loaded{}, err
	}
	return res, nil
}
