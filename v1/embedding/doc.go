// Package embedding computes text and image embeddings, and image captions,
// through an OpenAI-compatible inference service.
//
// # Overview
//
// Client is the only entrypoint. Text and image models must map into the same
// vector space so that a text vector can be compared with image vectors:
//
//	client, err := embedding.NewClient(embedding.NewConfig())
//	textVec, err := client.EmbedText(ctx, "a red bicycle")
//	imageVec, err := client.EmbedImage(ctx, pngBytes)
//	caption, err := client.Caption(ctx, pngBytes)
//
// Every returned vector has exactly Config.Dimensions values; anything else
// fails with ErrDimensionMismatch.
//
// # Endpoints
//
//   - POST {endpoint}/embeddings  {model, input: [text | {type: image_url, image_url: {url}}]}
//   - POST {endpoint}/captions    {model, image}
//
// Images are sent as base64 data URLs. Non-2xx answers surface as *StatusError.
//
// # Configuration
//
// Required variables:
//
//   - EMBEDDING_ENDPOINT
//     Base URL of the inference service (no trailing path or slash).
//
//   - EMBEDDING_SERVICE_TOKEN
//     Bearer token for authentication.
//
// Optional variables:
//
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS (default 30)
//   - EMBEDDING_TEXT_MODEL, EMBEDDING_IMAGE_MODEL, EMBEDDING_CAPTION_MODEL
//   - EMBEDDING_DIMENSIONS (default 512)
//
// # Dependency Injection (Fx)
//
// FXModule supplies *Client from a *Config in the container and closes idle
// HTTP connections on shutdown.
package embedding
