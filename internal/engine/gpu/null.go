package gpu

// Null is a headless device for tests. Resource creation succeeds without a
// GPU and draw calls are recorded for inspection.
type Null struct {
	Meshes []MeshDraw
	Quads  []QuadDraw

	frames    int
	destroyed bool
}

// NewNull creates a headless device.
func NewNull() *Null {
	return &Null{}
}

type nullVertexBuffer struct {
	verts []Vertex
}

func (b *nullVertexBuffer) Len() int { return len(b.verts) }
func (b *nullVertexBuffer) Destroy() {}

type nullIndexBuffer struct {
	indices []uint32
}

func (b *nullIndexBuffer) Len() int { return len(b.indices) }
func (b *nullIndexBuffer) Destroy() {}

type nullTexture struct {
	width, height uint32
}

func (t *nullTexture) Size() (uint32, uint32) { return t.width, t.height }
func (t *nullTexture) Destroy()               {}

func (d *Null) CreateVertexBuffer(verts []Vertex) (VertexBuffer, error) {
	return &nullVertexBuffer{verts: verts}, nil
}

func (d *Null) CreateIndexBuffer(indices []uint32) (IndexBuffer, error) {
	return &nullIndexBuffer{indices: indices}, nil
}

func (d *Null) CreateTexture(width, height uint32, rgba []byte) (Texture, UploadFuture, error) {
	return &nullTexture{width: width, height: height}, completedUpload{}, nil
}

func (d *Null) BeginFrame(width, height int32, clearColor [4]float32) {
	d.frames++
	d.Meshes = d.Meshes[:0]
	d.Quads = d.Quads[:0]
}

func (d *Null) DrawMesh(draw MeshDraw) {
	d.Meshes = append(d.Meshes, draw)
}

func (d *Null) DrawQuad(draw QuadDraw) {
	d.Quads = append(d.Quads, draw)
}

func (d *Null) EndFrame() {}

func (d *Null) Destroy() { d.destroyed = true }

// Frames returns how many frames have begun. Test helper.
func (d *Null) Frames() int { return d.frames }
