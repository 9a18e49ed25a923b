package ml

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrModelUnavailable возвращается, если артефакт модели не был загружен.
// Состояние терминальное: прогнозы отключены до перезапуска процесса.
var ErrModelUnavailable = errors.New("модель прогнозирования недоступна")

// Predictor — контракт обученной модели: одна запись признаков, часы отсутствия
type Predictor interface {
	Predict(fv FeatureVector) (float64, error)
}

// LinearModel — сериализованный артефакт: веса по схеме признаков и свободный член
type LinearModel struct {
	Weights   []float64
	Intercept float64
	Version   string
}

func (m *LinearModel) Predict(fv FeatureVector) (float64, error) {
	values := fv.Values()
	if len(m.Weights) != len(values) {
		return 0, fmt.Errorf("схема модели не совпадает: %d весов на %d признаков", len(m.Weights), len(values))
	}

	hours := m.Intercept
	for i, v := range values {
		hours += m.Weights[i] * v
	}

	return hours, nil
}

// LoadLinearModel загружает артефакт модели из gob-файла
func LoadLinearModel(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var model LinearModel
	if err := gob.NewDecoder(f).Decode(&model); err != nil {
		return nil, fmt.Errorf("ошибка чтения артефакта модели: %w", err)
	}

	if len(model.Weights) != NumFeatures {
		return nil, fmt.Errorf("артефакт несовместим со схемой признаков: %d весов", len(model.Weights))
	}

	return &model, nil
}

// Adapter оборачивает загруженную модель. Доступ сериализуется мьютексом:
// потокобезопасность нижележащего артефакта не гарантирована.
type Adapter struct {
	mu     sync.Mutex
	model  Predictor
	logger *logrus.Logger
}

// NewAdapter загружает артефакт с диска. При ошибке загрузки адаптер
// создается в отключенном состоянии, процесс не падает.
func NewAdapter(modelPath string) *Adapter {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	model, err := LoadLinearModel(modelPath)
	if err != nil {
		logger.WithError(err).WithField("path", modelPath).
			Warn("Model artifact not loaded, predictions disabled")
		return &Adapter{logger: logger}
	}

	logger.WithFields(logrus.Fields{
		"path":    modelPath,
		"version": model.Version,
	}).Info("Prediction model loaded")

	return &Adapter{model: model, logger: logger}
}

// NewAdapterWithPredictor создает адаптер поверх готовой модели
func NewAdapterWithPredictor(p Predictor) *Adapter {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Adapter{model: p, logger: logger}
}

// Available проверяет, загружена ли модель
func (a *Adapter) Available() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model != nil
}

// Predict возвращает прогноз часов отсутствия: неотрицательный,
// округленный до двух знаков перед сохранением в журнал.
func (a *Adapter) Predict(fv FeatureVector) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.model == nil {
		return 0, ErrModelUnavailable
	}

	raw, err := a.model.Predict(fv)
	if err != nil {
		a.logger.WithError(err).Error("Model prediction failed")
		return 0, err
	}

	if raw < 0 {
		raw = 0
	}

	return math.Round(raw*100) / 100, nil
}
