// Package node exposes the search pipeline as invocable nodes.
//
// A node takes a JSON-like map of inputs and always returns a Response; errors
// and panics never escape Handle. Failed responses carry a code derived from
// the error kind:
//
//	validation                   400
//	upstream (embedding/caption) 502
//	infrastructure, retryable    503
//	infrastructure, other        500
//
// Nodes:
//
//	embed              {description?, image_base64?}  -> {text_vector, image_vector?}
//	image-description  {image_base64}                 -> {description}
//	vector-insert      {description, image_url, text_vector, image_vector} -> {inserted, id}
//	vector-query       {text_vector?, image_vector?, top_k?} -> {results}
//	index-image        {image_base64, description?}   -> {inserted, id, description, image_url}
//
// image_base64 is a data URL or bare base64 of a PNG, JPEG or GIF image.
package node
