package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the persisted domain types.
// Vectors use raw float32 encoding, timestamps microsecond Unix time.

var (
	// IDMUS serializes IDs as varint uint64.
	IDMUS = idMUS{}

	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	stringMapMUS    = ord.NewMapSer[string, string](ord.String, ord.String)
	idSliceMUS      = ord.NewSliceSer[ID](IDMUS)

	// SourceDocumentMUS serializes SourceDocument records.
	SourceDocumentMUS = sourceDocumentMUS{}
	// ContentChunkMUS serializes ContentChunk records.
	ContentChunkMUS = contentChunkMUS{}
	// ConceptMUS serializes Concept records.
	ConceptMUS = conceptMUS{}
	// RelationshipMUS serializes Relationship records.
	RelationshipMUS = relationshipMUS{}
	// GeneratedContentMUS serializes GeneratedContent records.
	GeneratedContentMUS = generatedContentMUS{}
	// QualityReportMUS serializes QualityReport records.
	QualityReportMUS = qualityReportMUS{}
	// ArtifactMUS serializes Artifact records.
	ArtifactMUS = artifactMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type sourceDocumentMUS struct{}

func (sourceDocumentMUS) Marshal(d SourceDocument, bs []byte) (n int) {
	n = IDMUS.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.Title, bs[n:])
	n += ord.String.Marshal(d.Content, bs[n:])
	n += varint.Int.Marshal(int(d.Kind), bs[n:])
	n += ord.String.Marshal(d.URL, bs[n:])
	n += ord.String.Marshal(d.DocType, bs[n:])
	n += stringMapMUS.Marshal(d.Metadata, bs[n:])
	n += raw.TimeUnixMicro.Marshal(d.CreatedAt, bs[n:])
	return
}

func (sourceDocumentMUS) Unmarshal(bs []byte) (d SourceDocument, n int, err error) {
	var n1 int
	d.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	d.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	d.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var kind int
	kind, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	d.Kind = SourceKind(kind)
	d.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	d.DocType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	d.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	d.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (sourceDocumentMUS) Size(d SourceDocument) (size int) {
	size = IDMUS.Size(d.Id)
	size += ord.String.Size(d.Title)
	size += ord.String.Size(d.Content)
	size += varint.Int.Size(int(d.Kind))
	size += ord.String.Size(d.URL)
	size += ord.String.Size(d.DocType)
	size += stringMapMUS.Size(d.Metadata)
	size += raw.TimeUnixMicro.Size(d.CreatedAt)
	return
}

func (s sourceDocumentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type contentChunkMUS struct{}

func (contentChunkMUS) Marshal(c ContentChunk, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += IDMUS.Marshal(c.DocumentID, bs[n:])
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += ord.String.Marshal(c.Content, bs[n:])
	n += varint.Int.Marshal(c.Start, bs[n:])
	n += varint.Int.Marshal(c.End, bs[n:])
	n += float32SliceMUS.Marshal(c.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(c.CreatedAt, bs[n:])
	return
}

func (contentChunkMUS) Unmarshal(bs []byte) (c ContentChunk, n int, err error) {
	var n1 int
	c.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	c.DocumentID, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Start, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.End, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (contentChunkMUS) Size(c ContentChunk) (size int) {
	size = IDMUS.Size(c.Id)
	size += IDMUS.Size(c.DocumentID)
	size += varint.Int.Size(c.Index)
	size += ord.String.Size(c.Content)
	size += varint.Int.Size(c.Start)
	size += varint.Int.Size(c.End)
	size += float32SliceMUS.Size(c.Vector)
	size += raw.TimeUnixMicro.Size(c.CreatedAt)
	return
}

func (s contentChunkMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type conceptMUS struct{}

func (conceptMUS) Marshal(c Concept, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Name, bs[n:])
	n += IDMUS.Marshal(c.DocumentID, bs[n:])
	n += float32SliceMUS.Marshal(c.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(c.CreatedAt, bs[n:])
	return
}

func (conceptMUS) Unmarshal(bs []byte) (c Concept, n int, err error) {
	var n1 int
	c.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	c.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.DocumentID, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (conceptMUS) Size(c Concept) (size int) {
	size = IDMUS.Size(c.Id)
	size += ord.String.Size(c.Name)
	size += IDMUS.Size(c.DocumentID)
	size += float32SliceMUS.Size(c.Vector)
	size += raw.TimeUnixMicro.Size(c.CreatedAt)
	return
}

func (s conceptMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type relationshipMUS struct{}

func (relationshipMUS) Marshal(r Relationship, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += IDMUS.Marshal(r.Concept1ID, bs[n:])
	n += IDMUS.Marshal(r.Concept2ID, bs[n:])
	n += ord.String.Marshal(r.RelType, bs[n:])
	n += raw.TimeUnixMicro.Marshal(r.CreatedAt, bs[n:])
	return
}

func (relationshipMUS) Unmarshal(bs []byte) (r Relationship, n int, err error) {
	var n1 int
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Concept1ID, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Concept2ID, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.RelType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (relationshipMUS) Size(r Relationship) (size int) {
	size = IDMUS.Size(r.Id)
	size += IDMUS.Size(r.Concept1ID)
	size += IDMUS.Size(r.Concept2ID)
	size += ord.String.Size(r.RelType)
	size += raw.TimeUnixMicro.Size(r.CreatedAt)
	return
}

func (s relationshipMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type generatedContentMUS struct{}

func (generatedContentMUS) Marshal(g GeneratedContent, bs []byte) (n int) {
	n = IDMUS.Marshal(g.Id, bs)
	n += ord.String.Marshal(g.Title, bs[n:])
	n += varint.Int.Marshal(int(g.ContentType), bs[n:])
	n += ord.String.Marshal(g.Content, bs[n:])
	n += idSliceMUS.Marshal(g.SourceDocuments, bs[n:])
	n += varint.Int.Marshal(g.WordCount, bs[n:])
	n += varint.Int.Marshal(g.Iteration, bs[n:])
	n += stringSliceMUS.Marshal(g.AppliedRecommendations, bs[n:])
	n += raw.TimeUnixMicro.Marshal(g.CreatedAt, bs[n:])
	return
}

func (generatedContentMUS) Unmarshal(bs []byte) (g GeneratedContent, n int, err error) {
	var n1 int
	g.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	g.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var ct int
	ct, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	g.ContentType = ContentType(ct)
	g.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	g.SourceDocuments, n1, err = idSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	g.WordCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	g.Iteration, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	g.AppliedRecommendations, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	g.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (generatedContentMUS) Size(g GeneratedContent) (size int) {
	size = IDMUS.Size(g.Id)
	size += ord.String.Size(g.Title)
	size += varint.Int.Size(int(g.ContentType))
	size += ord.String.Size(g.Content)
	size += idSliceMUS.Size(g.SourceDocuments)
	size += varint.Int.Size(g.WordCount)
	size += varint.Int.Size(g.Iteration)
	size += stringSliceMUS.Size(g.AppliedRecommendations)
	size += raw.TimeUnixMicro.Size(g.CreatedAt)
	return
}

func (s generatedContentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type qualityReportMUS struct{}

func (qualityReportMUS) Marshal(q QualityReport, bs []byte) (n int) {
	n = raw.Float64.Marshal(q.Accuracy, bs)
	n += raw.Float64.Marshal(q.Completeness, bs[n:])
	n += raw.Float64.Marshal(q.Readability, bs[n:])
	n += raw.Float64.Marshal(q.Engagement, bs[n:])
	n += raw.Float64.Marshal(q.Structure, bs[n:])
	n += raw.Float64.Marshal(q.FactualConsistency, bs[n:])
	n += raw.Float64.Marshal(q.OverallScore, bs[n:])
	n += stringSliceMUS.Marshal(q.Recommendations, bs[n:])
	n += raw.TimeUnixMicro.Marshal(q.CreatedAt, bs[n:])
	return
}

func (qualityReportMUS) Unmarshal(bs []byte) (q QualityReport, n int, err error) {
	var n1 int
	q.Accuracy, n, err = raw.Float64.Unmarshal(bs)
	if err != nil {
		return
	}
	q.Completeness, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.Readability, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.Engagement, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.Structure, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.FactualConsistency, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.OverallScore, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.Recommendations, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	q.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (qualityReportMUS) Size(q QualityReport) (size int) {
	size = raw.Float64.Size(q.Accuracy) * 7
	size += stringSliceMUS.Size(q.Recommendations)
	size += raw.TimeUnixMicro.Size(q.CreatedAt)
	return
}

func (s qualityReportMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type artifactMUS struct{}

func (artifactMUS) Marshal(a Artifact, bs []byte) (n int) {
	n = IDMUS.Marshal(a.Id, bs)
	n += ord.String.Marshal(a.TaskID, bs[n:])
	n += GeneratedContentMUS.Marshal(a.Content, bs[n:])
	n += QualityReportMUS.Marshal(a.Report, bs[n:])
	n += raw.TimeUnixMicro.Marshal(a.CreatedAt, bs[n:])
	return
}

func (artifactMUS) Unmarshal(bs []byte) (a Artifact, n int, err error) {
	var n1 int
	a.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	a.TaskID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Content, n1, err = GeneratedContentMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Report, n1, err = QualityReportMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (artifactMUS) Size(a Artifact) (size int) {
	size = IDMUS.Size(a.Id)
	size += ord.String.Size(a.TaskID)
	size += GeneratedContentMUS.Size(a.Content)
	size += QualityReportMUS.Size(a.Report)
	size += raw.TimeUnixMicro.Size(a.CreatedAt)
	return
}

func (s artifactMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
