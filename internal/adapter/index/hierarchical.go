package index

import (
	"sort"

	"searchlab/internal/adapter/embedding"
	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// Narrowing factors: how many top-scoring documents survive the first level
// and how many sections survive the second. Small values keep the search
// cheap on large corpora at a known recall risk.
const (
	DefaultDocFanout     = 3
	DefaultSectionFanout = 5
)

// HierarchicalIndexer builds a three-level structure: document centroids,
// section centroids (chunks grouped by heading within a document), and raw
// chunk vectors. Search narrows coarse-to-fine, so a strong chunk below a
// weak document can be missed. That loss is the point of the strategy, not
// a defect; the benchmark exists to measure it.
type HierarchicalIndexer struct {
	Embedder      port.Embedder
	DocFanout     int
	SectionFanout int
}

func (ix *HierarchicalIndexer) Name() string { return NameLlamaIndex }

func (ix *HierarchicalIndexer) Build(chunks []domain.Chunk) port.Index {
	byDoc := make(map[string]*docNode)
	var docs []*docNode

	for _, c := range chunks {
		doc := byDoc[c.DocID]
		if doc == nil {
			doc = &docNode{id: c.DocID}
			byDoc[c.DocID] = doc
			docs = append(docs, doc)
		}
		section := doc.section(c.Heading)
		section.chunks = append(section.chunks, chunkVector{id: c.ID, vec: ix.Embedder.Embed(c.Text)})
	}

	dim := ix.Embedder.Dimension()
	for _, doc := range docs {
		var docMembers []chunkVector
		for _, section := range doc.sections {
			section.centroid = centroid(section.chunks, dim)
			docMembers = append(docMembers, section.chunks...)
		}
		doc.centroid = centroid(docMembers, dim)
	}

	return &hierarchicalIndex{
		embedder:      ix.Embedder,
		docs:          docs,
		docFanout:     fanout(ix.DocFanout, DefaultDocFanout),
		sectionFanout: fanout(ix.SectionFanout, DefaultSectionFanout),
		size:          len(chunks),
		ids:           idSet(chunks),
	}
}

func fanout(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

type docNode struct {
	id       string
	centroid []float64
	sections []*sectionNode
}

func (d *docNode) section(heading string) *sectionNode {
	for _, s := range d.sections {
		if s.heading == heading {
			return s
		}
	}
	s := &sectionNode{heading: heading}
	d.sections = append(d.sections, s)
	return s
}

type sectionNode struct {
	heading  string
	centroid []float64
	chunks   []chunkVector
}

// centroid is the arithmetic mean of the member vectors. Cosine scoring does
// not need it renormalised.
func centroid(members []chunkVector, dim int) []float64 {
	mean := make([]float64, dim)
	if len(members) == 0 {
		return mean
	}
	for _, m := range members {
		for i, v := range m.vec {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(members))
	}
	return mean
}

type hierarchicalIndex struct {
	embedder      port.Embedder
	docs          []*docNode
	docFanout     int
	sectionFanout int
	size          int
	ids           map[string]struct{}
}

func (ix *hierarchicalIndex) Len() int                      { return ix.size }
func (ix *hierarchicalIndex) ChunkIDs() map[string]struct{} { return ix.ids }

func (ix *hierarchicalIndex) Search(query string, k int) domain.RankedResult {
	if ix.size == 0 || k <= 0 {
		return nil
	}
	queryVec := ix.embedder.Embed(query)

	topDocs := ix.narrowDocs(queryVec)
	topSections := ix.narrowSections(queryVec, topDocs)

	var hits []domain.SearchHit
	for _, section := range topSections {
		for _, cv := range section.chunks {
			score := embedding.Cosine(queryVec, cv.vec)
			if score > 0 {
				hits = append(hits, domain.SearchHit{ChunkID: cv.id, Score: score})
			}
		}
	}
	return sortHits(hits, k)
}

type scoredDoc struct {
	doc   *docNode
	score float64
}

func (ix *hierarchicalIndex) narrowDocs(queryVec []float64) []*docNode {
	scored := make([]scoredDoc, 0, len(ix.docs))
	for _, doc := range ix.docs {
		score := embedding.Cosine(queryVec, doc.centroid)
		if score > 0 {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].doc.id < scored[j].doc.id
	})
	if len(scored) > ix.docFanout {
		scored = scored[:ix.docFanout]
	}
	docs := make([]*docNode, len(scored))
	for i, s := range scored {
		docs[i] = s.doc
	}
	return docs
}

type scoredSection struct {
	docID   string
	section *sectionNode
	score   float64
}

func (ix *hierarchicalIndex) narrowSections(queryVec []float64, docs []*docNode) []*sectionNode {
	var scored []scoredSection
	for _, doc := range docs {
		for _, section := range doc.sections {
			score := embedding.Cosine(queryVec, section.centroid)
			if score > 0 {
				scored = append(scored, scoredSection{docID: doc.id, section: section, score: score})
			}
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].docID != scored[j].docID {
			return scored[i].docID < scored[j].docID
		}
		return scored[i].section.heading < scored[j].section.heading
	})
	if len(scored) > ix.sectionFanout {
		scored = scored[:ix.sectionFanout]
	}
	sections := make([]*sectionNode, len(scored))
	for i, s := range scored {
		sections[i] = s.section
	}
	return sections
}
