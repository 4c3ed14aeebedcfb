package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshBuffers holds the uploaded geometry of one mesh asset.
type meshBuffers struct {
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
}

// objectBindings holds the per-object uniforms and the bind group exposing them.
type objectBindings struct {
	model     *wgpu.Buffer
	material  *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	pipeline          *wgpu.RenderPipeline
	frameLayout       *wgpu.BindGroupLayout
	objectLayout      *wgpu.BindGroupLayout
	cameraBuffer      *wgpu.Buffer
	lightBuffer       *wgpu.Buffer
	frameBindGroup    *wgpu.BindGroup
	meshes            map[asset.Handle[mesh.Mesh]]*meshBuffers
	objects           map[uint64]*objectBindings
	pipelineSampleCnt uint32
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter, device and queue.
//
// Parameters:
//   - surfaceDescriptor: the platform surface from the window
//   - forceFallbackAdapter: request the software fallback adapter
//   - sampleCount: MSAA sample count for the main pass
//
// Returns:
//   - *wgpuRendererBackendImpl: the backend, with no surface configured yet
//   - error: an error if no adapter or device could be acquired
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("renderer: window has no surface descriptor")
	}

	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		meshes:      make(map[asset.Handle[mesh.Mesh]]*meshBuffers),
		objects:     make(map[uint64]*objectBindings),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Pinwheel Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initFrameBindings(); err != nil {
		return nil, err
	}
	return w, nil
}

// initFrameBindings creates the layouts and the per-frame camera and light buffers.
func (b *wgpuRendererBackendImpl) initFrameBindings() error {
	uniformEntry := func(binding uint32, size uint64, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
		entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		entry.Buffer.MinBindingSize = size
		return entry
	}
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

	var err error
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, camera.GPUCameraUniformSize, both),
			uniformEntry(1, light.GPULightBufferSize, wgpu.ShaderStageFragment),
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: frame layout: %w", err)
	}
	b.objectLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, GPUModelUniformSize, wgpu.ShaderStageVertex),
			uniformEntry(1, material.GPUMaterialSize, wgpu.ShaderStageFragment),
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: object layout: %w", err)
	}

	if b.cameraBuffer, err = b.uniformBuffer("Camera", camera.GPUCameraUniformSize); err != nil {
		return err
	}
	if b.lightBuffer, err = b.uniformBuffer("Lights", light.GPULightBufferSize); err != nil {
		return err
	}
	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.lightBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: frame bind group: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) uniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: create %s buffer: %w", label, err)
	}
	return buf, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if msaaEnabled {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(fmt.Sprintf("renderer: ConfigureSurface: %v", err))
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(fmt.Sprintf("renderer: ConfigureSurface: %v", err))
		}
	}

	// Depth texture sample count must match the color attachment.
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
	}
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Sprintf("renderer: ConfigureSurface: %v", err))
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(fmt.Sprintf("renderer: ConfigureSurface: %v", err))
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in DrawFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if b.pipeline == nil || b.pipelineSampleCnt != count {
		if err := b.createPipeline(); err != nil {
			panic(fmt.Sprintf("renderer: ConfigureSurface: %v", err))
		}
	}
}

// createPipeline compiles the forward shader for the current surface format.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	format := *b.surfaceFormat
	encodeSRGB := format != wgpu.TextureFormatBGRA8UnormSrgb && format != wgpu.TextureFormatRGBA8UnormSrgb

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Forward Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: forwardShader(encodeSRGB, light.MaxGPULights),
		},
	})
	if err != nil {
		return fmt.Errorf("compile forward shader: %w", err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Forward Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.objectLayout},
	})
	if err != nil {
		return fmt.Errorf("forward pipeline layout: %w", err)
	}

	p, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Forward Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: mesh.GPUVertexSize,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("forward pipeline: %w", err)
	}
	b.pipeline = p
	b.pipelineSampleCnt = uint32(b.sampleCount)
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

// DrawFrame uploads the frame's uniforms and draws every item in one render pass.
//
// TODO: the bloom mip chain only exists in the software backend; port it to a compute
// pass so HDR cameras bloom on the GPU too.
func (b *wgpuRendererBackendImpl) DrawFrame(f *frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}

	cam := camera.NewGPUCameraUniform(f.camera)
	b.queue.WriteBuffer(b.cameraBuffer, 0, cam.Marshal())
	b.queue.WriteBuffer(b.lightBuffer, 0, light.MarshalLightBuffer(f.lights, f.ambient))

	for i := range f.items {
		if err := b.prepareItem(&f.items[i]); err != nil {
			return err
		}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	bg := f.clearColor
	attachment.ClearValue = wgpu.Color{R: float64(bg.R), G: float64(bg.G), B: float64(bg.B), A: float64(bg.A)}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.frameBindGroup, nil)
	for i := range f.items {
		item := &f.items[i]
		buffers := b.meshes[item.meshHandle]
		pass.SetBindGroup(1, b.objects[item.objectID].bindGroup, nil)
		pass.SetVertexBuffer(0, buffers.vertex, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(buffers.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(buffers.indexCount, 1, 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command buffer: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

// prepareItem uploads mesh geometry on first use and writes the object's uniforms.
func (b *wgpuRendererBackendImpl) prepareItem(item *drawItem) error {
	if _, ok := b.meshes[item.meshHandle]; !ok {
		vertexData, indexData := item.mesh.VertexData(), item.mesh.IndexData()
		vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: item.mesh.Name() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("vertex buffer %s: %w", item.mesh.Name(), err)
		}
		index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: item.mesh.Name() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			vertex.Release()
			return fmt.Errorf("index buffer %s: %w", item.mesh.Name(), err)
		}
		b.queue.WriteBuffer(vertex, 0, vertexData)
		b.queue.WriteBuffer(index, 0, indexData)
		b.meshes[item.meshHandle] = &meshBuffers{vertex: vertex, index: index, indexCount: uint32(item.mesh.IndexCount())}
	}

	obj, ok := b.objects[item.objectID]
	if !ok {
		label := fmt.Sprintf("Object %d", item.objectID)
		model, err := b.uniformBuffer(label+" Model", GPUModelUniformSize)
		if err != nil {
			return err
		}
		mat, err := b.uniformBuffer(label+" Material", material.GPUMaterialSize)
		if err != nil {
			model.Release()
			return err
		}
		bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  label + " Bind Group",
			Layout: b.objectLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: model, Offset: 0, Size: wgpu.WholeSize},
				{Binding: 1, Buffer: mat, Offset: 0, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			model.Release()
			mat.Release()
			return fmt.Errorf("%s bind group: %w", label, err)
		}
		obj = &objectBindings{model: model, material: mat, bindGroup: bindGroup}
		b.objects[item.objectID] = obj
	}

	u := GPUModelUniform{Model: item.model, Normal: item.normalMatrix}
	m := material.NewGPUMaterial(item.material)
	b.queue.WriteBuffer(obj.model, 0, u.Marshal())
	b.queue.WriteBuffer(obj.material, 0, m.Marshal())
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, m := range b.meshes {
		m.vertex.Release()
		m.index.Release()
	}
	for _, o := range b.objects {
		o.bindGroup.Release()
		o.model.Release()
		o.material.Release()
	}
	b.meshes = nil
	b.objects = nil

	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.cameraBuffer.Release()
		b.lightBuffer.Release()
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
