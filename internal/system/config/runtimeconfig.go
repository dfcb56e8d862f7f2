/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import "sync"

// ClientRuntime holds the runtime configuration for the client process.
type ClientRuntime struct {
	AppHome string `yaml:"app_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *ClientRuntime
	once          sync.Once
)

// InitializeClientRuntime initializes the ClientRuntime configuration.
func InitializeClientRuntime(appHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &ClientRuntime{
			AppHome: appHome,
			Config:  *config,
		}
	})

	return nil
}

// GetClientRuntime returns the ClientRuntime configuration.
func GetClientRuntime() *ClientRuntime {

	if runtimeConfig == nil {
		panic("ClientRuntime is not initialized")
	}
	return runtimeConfig
}
