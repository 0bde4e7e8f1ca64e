// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package classifier turns a soil and weather feature vector into a probability
for every crop label.

The package is an adapter around an opaque model. It owns the two pieces of
training-time state that must match the model exactly:

  - Scaler: the standardisation applied to raw features, (x - mean) / scale.
  - Labels: the bijective mapping between class indices and crop names.

Three model implementations satisfy Classifier:

  - CentroidModel: nearest-centroid scoring with a softmax over negative
    squared distance in scaled space. The default artifact is embedded and
    covers the 22 labels of the public crop recommendation dataset.
  - DenseModel: a feed-forward network exported as JSON (dense layers with
    relu or softmax activations).
  - RemoteClassifier: posts features to a model-serving endpoint, guarded by
    a circuit breaker.

Evaluate reports accuracy against a labelled CSV dataset and is run once at
startup when a dataset path is configured.

Classify returns predictions in label-encoder order. Ranking is the caller's
concern.
*/
package classifier
